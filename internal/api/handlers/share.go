package handlers

import (
	"net/http"
	"strconv"

	"github.com/rohits-web03/codebox/internal/api/middleware"
	"github.com/rohits-web03/codebox/internal/services"
	"github.com/rohits-web03/codebox/internal/utils"
	"go.uber.org/zap"
)

type submitShareRequest struct {
	UploaderName string        `json:"uploaderName"`
	Code         string        `json:"code,omitempty"`
	Files        []fileRequest `json:"files"`
	TotalSize    int64         `json:"totalSize,omitempty"`
}

// POST /api/v1/shares
// SubmitShare godoc
// @Summary Share files under a short code
// @Description Stores file metadata as an ungrouped share. A 6-digit code is minted unless one is supplied.
// @Tags Shares
// @Accept json
// @Produce json
// @Param request body submitShareRequest true "Share request"
// @Success 201 {object} utils.Payload "Share created"
// @Failure 400 {object} utils.Payload "Empty file list or invalid input"
// @Failure 409 {object} utils.Payload "Code already in use"
// @Router /api/v1/shares [post]
func (h *Handler) SubmitShare(w http.ResponseWriter, r *http.Request) {
	var input submitShareRequest
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	uploader := input.UploaderName
	if uploader == "" {
		if name, ok := middleware.Username(r.Context()); ok {
			uploader = name
		}
	}

	rec, err := h.shares.Submit(r.Context(), services.SubmitShareInput{
		UploaderName: uploader,
		Code:         input.Code,
		Files:        toFileInputs(input.Files),
		TotalSize:    input.TotalSize,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Files shared successfully",
		Data: map[string]any{
			"code":      rec.Code,
			"totalSize": rec.TotalSize,
			"files":     len(rec.Files),
		},
	})
}

// GET /api/v1/resolve/{code}
// ResolveCode godoc
// @Summary Look up files by code
// @Description Returns the share addressed by the code, or a masked view of a single container file.
// @Tags Shares
// @Produce json
// @Param code path string true "6-digit code"
// @Success 200 {object} utils.Payload "Files retrieved successfully"
// @Failure 404 {object} utils.Payload "Unknown code"
// @Router /api/v1/resolve/{code} [get]
func (h *Handler) ResolveCode(w http.ResponseWriter, r *http.Request) {
	view, err := h.resolver.Resolve(r.Context(), r.PathValue("code"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	utils.OK(w, http.StatusOK, "Files retrieved successfully", view)
}

// GET /api/v1/resolve/{code}/files/{index}/download
// PresignDownload godoc
// @Summary Get a download URL for one file
// @Description Returns a temporary signed URL (or the stored URL) for the file at the given index of a resolved code.
// @Tags Shares
// @Produce json
// @Param code path string true "6-digit code"
// @Param index path int true "File index"
// @Success 200 {object} utils.Payload "Download URL generated successfully"
// @Failure 400 {object} utils.Payload "Invalid index"
// @Failure 404 {object} utils.Payload "Unknown code or index"
// @Router /api/v1/resolve/{code}/files/{index}/download [get]
func (h *Handler) PresignDownload(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		utils.Fail(w, http.StatusBadRequest, "Invalid index")
		return
	}

	view, err := h.resolver.Resolve(r.Context(), r.PathValue("code"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if index >= len(view.Files) {
		h.writeError(w, services.ErrNotFound)
		return
	}
	file := view.Files[index]

	url, err := services.DownloadURL(r.Context(), h.storage, h.cfg.R2.PublicBaseURL, file.Locator, h.cfg.PresignTTL)
	if err != nil {
		h.logger.Error("presign download", zap.String("code", view.Code), zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "Failed to generate download URL")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Download URL generated successfully",
		Data: map[string]any{
			"url":       url,
			"filename":  file.Name,
			"mediaType": file.MediaType,
			"size":      file.Size,
		},
	})
}

// GET /api/v1/shares
// ListShares godoc
// @Summary List every share (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.Payload "Shares, newest first"
// @Failure 401 {object} utils.Payload "Not logged in"
// @Failure 403 {object} utils.Payload "Not an admin"
// @Router /api/v1/shares [get]
func (h *Handler) ListShares(w http.ResponseWriter, r *http.Request) {
	recs, err := h.shares.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Shares retrieved successfully", recs)
}

// DELETE /api/v1/shares/{code}
// DeleteShare godoc
// @Summary Delete a share and all its files
// @Tags Shares
// @Produce json
// @Param code path string true "6-digit code"
// @Success 200 {object} utils.Payload "Share deleted"
// @Failure 404 {object} utils.Payload "Unknown code"
// @Router /api/v1/shares/{code} [delete]
func (h *Handler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	if err := h.shares.Delete(r.Context(), r.PathValue("code")); err != nil {
		h.writeError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Share deleted", nil)
}
