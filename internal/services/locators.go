package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rohits-web03/codebox/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const maxLocatorChecks = 8

// IsObjectKey reports whether a locator names an object in the bucket rather
// than an absolute URL.
func IsObjectKey(locator string) bool {
	return !strings.Contains(locator, "://")
}

// checkLocators verifies that every object-key locator exists in storage.
// URL locators are taken as given. A nil storage skips the check.
func checkLocators(ctx context.Context, storage repositories.ObjectStorage, files []FileInput) error {
	if storage == nil {
		return nil
	}

	missing := make([]bool, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLocatorChecks)
	for i, f := range files {
		if !IsObjectKey(f.Locator) {
			continue
		}
		g.Go(func() error {
			ok, err := storage.Exists(gctx, strings.TrimSpace(f.Locator))
			if err != nil {
				return err
			}
			missing[i] = !ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return storeErr("check uploaded objects", err)
	}
	for i, m := range missing {
		if m {
			return invalid("files[%d]: object %q was not uploaded", i, files[i].Locator)
		}
	}
	return nil
}

// DownloadURL turns a stored locator into something a client can fetch.
// Object keys resolve against publicBaseURL when the bucket is public,
// otherwise they are presigned.
func DownloadURL(ctx context.Context, storage repositories.ObjectStorage, publicBaseURL, locator string, ttl time.Duration) (string, error) {
	if !IsObjectKey(locator) {
		return locator, nil
	}
	if publicBaseURL != "" {
		return url.JoinPath(publicBaseURL, locator)
	}
	if storage == nil {
		return locator, nil
	}
	return storage.PresignGet(ctx, locator, ttl)
}
