package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rohits-web03/codebox/internal/api"
	"github.com/rohits-web03/codebox/internal/api/handlers"
	"github.com/rohits-web03/codebox/internal/api/middleware"
	apiservices "github.com/rohits-web03/codebox/internal/api/services"
	"github.com/rohits-web03/codebox/internal/config"
	"github.com/rohits-web03/codebox/internal/repositories"
	"github.com/rohits-web03/codebox/internal/services"
	"github.com/rohits-web03/codebox/internal/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	var (
		store repositories.Store
		users repositories.UserStore
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		store = repositories.NewMemoryStore()
		users = repositories.NewMemoryUserStore()
	default:
		db, err := repositories.ConnectDatabase(cfg.DB_URL, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := repositories.CloseDatabase(db); err != nil {
				logger.Warn("Closing database", zap.Error(err))
			}
		}()
		store = repositories.NewGormStore(db)
		users = repositories.NewGormUserStore(db)
	}

	var storage repositories.ObjectStorage
	if cfg.R2.Enabled() {
		storage = repositories.NewR2Storage(
			cfg.R2.AccessKeyID, cfg.R2.SecretAccessKey, cfg.R2.AccountID, cfg.R2.BucketName, cfg.R2.Region,
		)
		logger.Info("Successfully initialized R2 client", zap.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Warn("R2 is not configured; locators are stored without existence checks")
	}

	resolver := services.NewResolver(store, services.NewResolveCache(cfg.ResolveCacheSize, cfg.ResolveCacheTTL), logger)
	minter := services.NewCodeMinter(store, utils.RandomCodes{}, cfg.CodeMaxAttempts)
	guard := services.NewAccessGuard(store, cfg.SecretHashCost)
	auth := middleware.NewAuthenticator(cfg.JWTSecret, cfg.AdminUsernames)

	h := handlers.New(handlers.Deps{
		Config:     cfg,
		Shares:     services.NewShareService(store, minter, resolver, storage, cfg.MaxFilesPerRequest, logger),
		Containers: services.NewContainerManager(store, guard, minter, resolver, storage, cfg.MaxFilesPerRequest, logger),
		Resolver:   resolver,
		Users:      users,
		Storage:    storage,
		Auth:       auth,
		OAuth:      apiservices.NewGoogleOAuthConfig(cfg.Google),
		Logger:     logger,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(cfg, h, auth, logger),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting Codebox server", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("could not listen on port %s: %w", cfg.Port, err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
