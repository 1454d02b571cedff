package api

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/rohits-web03/codebox/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rohits-web03/codebox/internal/api/handlers"
	"github.com/rohits-web03/codebox/internal/api/middleware"
	"github.com/rohits-web03/codebox/internal/config"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func SetupRouter(cfg config.Config, h *handlers.Handler, auth *middleware.Authenticator, log *zap.Logger) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(cfg.CorsConfig)

	// ---------- OPERATIONS ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mainMux.Handle("GET /metrics", promhttp.Handler())
	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	// ---------- AUTH ----------
	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /sign-up", h.RegisterUser)
	authMux.HandleFunc("POST /login", h.LoginUser)
	authMux.HandleFunc("POST /logout", h.Logout)
	authMux.HandleFunc("GET /google/login", h.HandleGoogleLogin)
	authMux.HandleFunc("GET /google/callback", h.HandleGoogleCallback)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- CODES & CONTAINERS ----------
	// Anonymous callers are welcome; a session only fills in defaults.
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /shares", h.SubmitShare)
	apiMux.HandleFunc("DELETE /shares/{code}", h.DeleteShare)
	apiMux.HandleFunc("GET /resolve/{code}", h.ResolveCode)
	apiMux.HandleFunc("GET /resolve/{code}/files/{index}/download", h.PresignDownload)
	apiMux.HandleFunc("POST /files/presign", h.PresignUpload)

	apiMux.HandleFunc("POST /containers", h.CreateContainer)
	apiMux.HandleFunc("POST /containers/{name}/open", h.OpenContainer)
	apiMux.HandleFunc("POST /containers/{name}/files", h.UploadToContainer)
	apiMux.HandleFunc("DELETE /containers/{name}/files/{code}", h.RemoveContainerFile)
	apiMux.HandleFunc("DELETE /containers/{name}", h.DeleteContainer)

	// ---------- ADMIN ----------
	apiMux.Handle("GET /shares", auth.RequireAdmin(http.HandlerFunc(h.ListShares)))
	apiMux.Handle("GET /containers", auth.RequireAdmin(http.HandlerFunc(h.ListContainers)))

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			auth.OptionalAuth(apiMux),
		),
	)

	log.Info("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Metrics(handler)
	handler = middleware.Logger(log)(handler)
	return handler
}
