package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rohits-web03/codebox/internal/api/middleware"
	"github.com/rohits-web03/codebox/internal/config"
	"github.com/rohits-web03/codebox/internal/repositories"
	"github.com/rohits-web03/codebox/internal/services"
	"github.com/rohits-web03/codebox/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const maxBodyBytes = 1 << 20 // 1 MB of JSON metadata

// Deps are the collaborators the HTTP handlers delegate to.
type Deps struct {
	Config     config.Config
	Shares     *services.ShareService
	Containers *services.ContainerManager
	Resolver   *services.Resolver
	Users      repositories.UserStore
	Storage    repositories.ObjectStorage // nil when no bucket is configured
	Auth       *middleware.Authenticator
	OAuth      *oauth2.Config // nil when Google login is disabled
	Logger     *zap.Logger
}

type Handler struct {
	cfg        config.Config
	shares     *services.ShareService
	containers *services.ContainerManager
	resolver   *services.Resolver
	users      repositories.UserStore
	storage    repositories.ObjectStorage
	auth       *middleware.Authenticator
	oauth      *oauth2.Config
	logger     *zap.Logger
}

func New(d Deps) *Handler {
	return &Handler{
		cfg:        d.Config,
		shares:     d.Shares,
		containers: d.Containers,
		resolver:   d.Resolver,
		users:      d.Users,
		storage:    d.Storage,
		auth:       d.Auth,
		oauth:      d.OAuth,
		logger:     d.Logger.With(zap.String("component", "handlers")),
	}
}

type fileRequest struct {
	Name      string `json:"name"`
	Locator   string `json:"locator"`
	Size      int64  `json:"size"`
	MediaType string `json:"mediaType,omitempty"`
}

func toFileInputs(files []fileRequest) []services.FileInput {
	out := make([]services.FileInput, 0, len(files))
	for _, f := range files {
		out = append(out, services.FileInput{
			Name:      f.Name,
			Locator:   f.Locator,
			Size:      f.Size,
			MediaType: f.MediaType,
		})
	}
	return out
}

// decodeJSON reads exactly one JSON object and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", services.ErrValidation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", services.ErrValidation)
	}
	return nil
}

// writeError maps service errors onto status codes. Store failures are
// logged and reported without internal detail.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status, message = http.StatusBadRequest, publicMessage(err)
	case errors.Is(err, services.ErrForbidden):
		status, message = http.StatusUnauthorized, "Invalid secret"
	case errors.Is(err, services.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrConflict):
		status, message = http.StatusConflict, "Already exists"
	default:
		h.logger.Error("request failed", zap.Error(err))
	}

	utils.Fail(w, status, message)
}

func publicMessage(err error) string {
	msg := err.Error()
	prefix := services.ErrValidation.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		msg = msg[i+len(prefix):]
	}
	if msg == "" {
		return "Invalid input"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
