package services

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rohits-web03/codebox/internal/models"
)

const (
	maxContainerName = 64
	// bcrypt ignores input past 72 bytes.
	maxSecretBytes = 72
)

// FileInput describes one file in a share or container upload request.
type FileInput struct {
	Name      string
	Locator   string
	Size      int64
	MediaType string
}

func normalizeContainerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", invalid("container name is required")
	case utf8.RuneCountInString(name) > maxContainerName:
		return "", invalid("container name must be at most %d characters", maxContainerName)
	case strings.Contains(name, "/"):
		return "", invalid("container name must not contain '/'")
	}
	return name, nil
}

func validateSecret(secret string) error {
	if secret == "" {
		return invalid("secret is required")
	}
	if len(secret) > maxSecretBytes {
		return invalid("secret must be at most %d bytes", maxSecretBytes)
	}
	return nil
}

// validateFiles checks a batch of incoming files and returns their total size.
func validateFiles(files []FileInput, maxFiles int) (int64, error) {
	if len(files) == 0 {
		return 0, invalid("file list must not be empty")
	}
	if maxFiles > 0 && len(files) > maxFiles {
		return 0, invalid("at most %d files per request", maxFiles)
	}
	var total int64
	for i, f := range files {
		if strings.TrimSpace(f.Name) == "" {
			return 0, invalid("files[%d]: name is required", i)
		}
		if strings.TrimSpace(f.Locator) == "" {
			return 0, invalid("files[%d]: locator is required", i)
		}
		if f.Size < 0 {
			return 0, invalid("files[%d]: size must not be negative", i)
		}
		if f.Size > math.MaxInt64-total {
			return 0, invalid("files[%d]: total size overflows", i)
		}
		total += f.Size
	}
	return total, nil
}

func toEntry(f FileInput, code string, at time.Time) models.FileEntry {
	return models.FileEntry{
		Code:       code,
		Name:       strings.TrimSpace(f.Name),
		Locator:    strings.TrimSpace(f.Locator),
		Size:       f.Size,
		MediaType:  f.MediaType,
		UploadedAt: at,
	}
}
