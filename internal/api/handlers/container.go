package handlers

import (
	"net/http"

	"github.com/rohits-web03/codebox/internal/utils"
)

type createContainerRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type secretRequest struct {
	Secret string `json:"secret"`
}

type uploadRequest struct {
	Secret string        `json:"secret"`
	Files  []fileRequest `json:"files"`
}

// POST /api/v1/containers
// CreateContainer godoc
// @Summary Create a secret-protected container
// @Tags Containers
// @Accept json
// @Produce json
// @Param request body createContainerRequest true "Name and secret"
// @Success 201 {object} utils.Payload "Container created"
// @Failure 400 {object} utils.Payload "Invalid input"
// @Failure 409 {object} utils.Payload "Name already taken"
// @Router /api/v1/containers [post]
func (h *Handler) CreateContainer(w http.ResponseWriter, r *http.Request) {
	var input createContainerRequest
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.containers.Create(r.Context(), input.Name, input.Secret)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.OK(w, http.StatusCreated, "Container created", c)
}

// POST /api/v1/containers/{name}/open
// OpenContainer godoc
// @Summary Open a container with its secret
// @Tags Containers
// @Accept json
// @Produce json
// @Param name path string true "Container name"
// @Param request body secretRequest true "Secret"
// @Success 200 {object} utils.Payload "Container files"
// @Failure 401 {object} utils.Payload "Wrong secret"
// @Failure 404 {object} utils.Payload "Unknown container"
// @Router /api/v1/containers/{name}/open [post]
func (h *Handler) OpenContainer(w http.ResponseWriter, r *http.Request) {
	var input secretRequest
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.containers.Open(r.Context(), r.PathValue("name"), input.Secret)
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Container opened", c)
}

// POST /api/v1/containers/{name}/files
// UploadToContainer godoc
// @Summary Add files to a container
// @Description Each file gets its own 6-digit code. The batch is stored all or nothing.
// @Tags Containers
// @Accept json
// @Produce json
// @Param name path string true "Container name"
// @Param request body uploadRequest true "Secret and files"
// @Success 200 {object} utils.Payload "Updated container"
// @Failure 400 {object} utils.Payload "Invalid input"
// @Failure 401 {object} utils.Payload "Wrong secret"
// @Failure 404 {object} utils.Payload "Unknown container"
// @Router /api/v1/containers/{name}/files [post]
func (h *Handler) UploadToContainer(w http.ResponseWriter, r *http.Request) {
	var input uploadRequest
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.containers.Upload(r.Context(), r.PathValue("name"), input.Secret, toFileInputs(input.Files))
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Files uploaded successfully", c)
}

// DELETE /api/v1/containers/{name}/files/{code}
// RemoveContainerFile godoc
// @Summary Remove one file from a container
// @Tags Containers
// @Accept json
// @Produce json
// @Param name path string true "Container name"
// @Param code path string true "File code"
// @Param request body secretRequest true "Secret"
// @Success 200 {object} utils.Payload "Updated container"
// @Failure 401 {object} utils.Payload "Wrong secret"
// @Failure 404 {object} utils.Payload "Unknown container or file"
// @Router /api/v1/containers/{name}/files/{code} [delete]
func (h *Handler) RemoveContainerFile(w http.ResponseWriter, r *http.Request) {
	var input secretRequest
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.containers.RemoveFile(r.Context(), r.PathValue("name"), input.Secret, r.PathValue("code"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "File removed", c)
}

// DELETE /api/v1/containers/{name}
// DeleteContainer godoc
// @Summary Delete a container and all its files
// @Tags Containers
// @Accept json
// @Produce json
// @Param name path string true "Container name"
// @Param request body secretRequest true "Secret"
// @Success 200 {object} utils.Payload "Container deleted"
// @Failure 401 {object} utils.Payload "Wrong secret"
// @Failure 404 {object} utils.Payload "Unknown container"
// @Router /api/v1/containers/{name} [delete]
func (h *Handler) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	var input secretRequest
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.containers.Delete(r.Context(), r.PathValue("name"), input.Secret); err != nil {
		h.writeError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Container deleted", nil)
}

// GET /api/v1/containers
// ListContainers godoc
// @Summary List every container (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.Payload "Containers, newest first"
// @Failure 401 {object} utils.Payload "Not logged in"
// @Failure 403 {object} utils.Payload "Not an admin"
// @Router /api/v1/containers [get]
func (h *Handler) ListContainers(w http.ResponseWriter, r *http.Request) {
	cs, err := h.containers.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Containers retrieved successfully", cs)
}
