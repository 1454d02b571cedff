package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/codebox/internal/services"
	"github.com/rohits-web03/codebox/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentPresigns = 8

type presignRequest struct {
	Files []struct {
		Name string `json:"name"`
		Size int64  `json:"size"`
	} `json:"files"`
}

type presignedUpload struct {
	Name      string `json:"name"`
	Locator   string `json:"locator"`
	UploadURL string `json:"uploadUrl"`
}

// objectKey builds a collision-free bucket key that keeps the original
// file name readable.
func objectKey(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return fmt.Sprintf("uploads/%s/%s", uuid.NewString(), base)
}

// POST /api/v1/files/presign
// PresignUpload godoc
// @Summary Get presigned upload URLs
// @Description Returns one bucket locator and presigned PUT URL per file. Use the locators in a share or container upload once the PUTs finish.
// @Tags Files
// @Accept json
// @Produce json
// @Param request body presignRequest true "Files to upload"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 503 {object} utils.Payload "Object storage not configured"
// @Router /api/v1/files/presign [post]
func (h *Handler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		utils.Fail(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	var input presignRequest
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	if len(input.Files) == 0 {
		h.writeError(w, fmt.Errorf("%w: no files provided", services.ErrValidation))
		return
	}
	if limit := h.cfg.MaxFilesPerRequest; limit > 0 && len(input.Files) > limit {
		h.writeError(w, fmt.Errorf("%w: at most %d files per request", services.ErrValidation, limit))
		return
	}
	for i, f := range input.Files {
		if strings.TrimSpace(f.Name) == "" || f.Size < 0 {
			h.writeError(w, fmt.Errorf("%w: files[%d]: name is required and size must not be negative", services.ErrValidation, i))
			return
		}
	}

	uploads := make([]presignedUpload, len(input.Files))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(maxConcurrentPresigns)
	for i, f := range input.Files {
		key := objectKey(f.Name)
		g.Go(func() error {
			url, err := h.storage.PresignPut(ctx, key, h.cfg.PresignTTL)
			if err != nil {
				return err
			}
			uploads[i] = presignedUpload{Name: f.Name, Locator: key, UploadURL: url}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger.Error("presign upload", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "Failed to generate upload URLs")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Upload URLs generated successfully",
		Data: map[string]any{
			"uploads":   uploads,
			"expiresIn": h.cfg.PresignTTL.String(),
		},
	})
}
