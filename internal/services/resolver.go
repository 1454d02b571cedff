package services

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rohits-web03/codebox/internal/models"
	"github.com/rohits-web03/codebox/internal/repositories"
	"github.com/rohits-web03/codebox/internal/utils"
	"go.uber.org/zap"
)

// MaskedUploader replaces the container name in views of container files.
const MaskedUploader = "Private container"

var resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "codebox_resolve_total",
	Help: "Resolve lookups by outcome (share, container, miss, error).",
}, []string{"outcome"})

// ResolvedView is the uniform answer to a code lookup, whether the code
// belongs to a share record or to a single file inside a container.
type ResolvedView struct {
	Code         string             `json:"code"`
	UploaderName string             `json:"uploaderName"`
	Masked       bool               `json:"masked"`
	Files        []models.FileEntry `json:"files"`
	TotalSize    int64              `json:"totalSize"`
	CreatedAt    time.Time          `json:"createdAt"`

	container string // owning container, never serialized
}

func (v *ResolvedView) clone() *ResolvedView {
	c := *v
	c.Files = append([]models.FileEntry(nil), v.Files...)
	return &c
}

type Resolver struct {
	store  repositories.Store
	cache  *ResolveCache
	logger *zap.Logger
}

func NewResolver(store repositories.Store, cache *ResolveCache, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		cache:  cache,
		logger: logger.With(zap.String("component", "resolver")),
	}
}

// Resolve looks code up among share records first and container files second.
// A container hit is masked: only the matching file is returned and the
// container name is replaced with MaskedUploader.
func (r *Resolver) Resolve(ctx context.Context, code string) (*ResolvedView, error) {
	if !utils.IsValidCode(code) {
		resolveTotal.WithLabelValues("miss").Inc()
		return nil, ErrNotFound
	}
	if v, ok := r.cache.Get(code); ok {
		return v, nil
	}

	gen := r.cache.Generation()
	view, outcome, err := r.lookup(ctx, code)
	resolveTotal.WithLabelValues(outcome).Inc()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Error("resolve failed", zap.String("code", code), zap.Error(err))
		}
		return nil, err
	}
	r.cache.Set(code, view, gen)
	return view, nil
}

func (r *Resolver) lookup(ctx context.Context, code string) (*ResolvedView, string, error) {
	rec, err := r.store.GetShareRecordByCode(ctx, code)
	switch {
	case err == nil:
		return &ResolvedView{
			Code:         rec.Code,
			UploaderName: rec.UploaderName,
			Files:        rec.Files,
			TotalSize:    rec.TotalSize,
			CreatedAt:    rec.CreatedAt,
		}, "share", nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, "error", storeErr("get share record", err)
	}

	c, err := r.store.GetContainerContainingFileCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "miss", ErrNotFound
		}
		return nil, "error", storeErr("find container file", err)
	}
	for _, f := range c.Files {
		if f.Code == code {
			return &ResolvedView{
				Code:         code,
				UploaderName: MaskedUploader,
				Masked:       true,
				Files:        []models.FileEntry{f},
				TotalSize:    f.Size,
				CreatedAt:    f.UploadedAt,
				container:    c.Name,
			}, "container", nil
		}
	}
	// The file was removed between the two reads.
	return nil, "miss", ErrNotFound
}

// Forget drops cached views for codes that no longer resolve.
func (r *Resolver) Forget(codes ...string) {
	r.cache.Invalidate(codes...)
}

func (r *Resolver) ForgetContainer(name string) {
	r.cache.InvalidateContainer(name)
}
