package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	// Only good enough for local development.
	devJWTSecret = "not-so-secret-now-is-it?"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	PublicBaseURL   string
}

// Enabled reports whether enough settings are present to talk to the bucket.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Config struct {
	DB_URL      string
	Port        string
	JWTSecret   string
	Environment string
	LogLevel    string
	StoreDriver string
	FrontendURL string
	CorsConfig  cors.Options
	R2          R2Config
	Google      GoogleConfig

	// Usernames allowed to call the admin listing endpoints.
	AdminUsernames []string

	CodeMaxAttempts    int
	SecretHashCost     int
	ResolveCacheSize   int
	ResolveCacheTTL    time.Duration
	PresignTTL         time.Duration
	MaxFilesPerRequest int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	ShutdownTimeout  time.Duration
}

// IsProduction is used for cookie and logger settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads the process environment, seeding it from ENV_FILE (default .env)
// when that file exists.
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// A missing dotenv file is normal outside development.
	_ = godotenv.Load(envFile)

	cfg := Config{
		DB_URL:      getEnv("DB_URL", ""),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", devJWTSecret),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		StoreDriver: getEnv("STORE_DRIVER", StoreDriverPostgres),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
			PublicBaseURL:   getEnv("R2_PUBLIC_BASE_URL", ""),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		},
		AdminUsernames: splitList(getEnv("ADMIN_USERNAMES", "")),
	}
	cfg.CorsConfig = CorsConfig(splitList(getEnv("CORS_ALLOWED_ORIGINS", cfg.FrontendURL)))

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DB_URL == "" {
			return Config{}, fmt.Errorf("DB_URL: required when STORE_DRIVER=%s", StoreDriverPostgres)
		}
	case StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER: unsupported driver %q (use %s or %s)",
			cfg.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	// The fallback secret is public.
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.JWTSecret == devJWTSecret && (cfg.IsProduction() || len(cfg.AdminUsernames) > 0) {
		return Config{}, fmt.Errorf("JWT_SECRET: required in production or when ADMIN_USERNAMES is set")
	}

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	var err error
	if cfg.CodeMaxAttempts, err = getEnvInt("CODE_MAX_ATTEMPTS", 10); err != nil {
		return Config{}, err
	}
	if cfg.CodeMaxAttempts < 1 {
		return Config{}, fmt.Errorf("CODE_MAX_ATTEMPTS: must be at least 1")
	}
	if cfg.SecretHashCost, err = getEnvInt("SECRET_HASH_COST", bcrypt.DefaultCost); err != nil {
		return Config{}, err
	}
	if cfg.SecretHashCost < bcrypt.MinCost || cfg.SecretHashCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("SECRET_HASH_COST: must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.ResolveCacheSize, err = getEnvInt("RESOLVE_CACHE_SIZE", 1024); err != nil {
		return Config{}, err
	}
	if cfg.MaxFilesPerRequest, err = getEnvInt("MAX_FILES_PER_REQUEST", 20); err != nil {
		return Config{}, err
	}

	durations := []struct {
		key      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"RESOLVE_CACHE_TTL", time.Minute, &cfg.ResolveCacheTTL},
		{"PRESIGN_TTL", 15 * time.Minute, &cfg.PresignTTL},
		{"HTTP_READ_TIMEOUT", 5 * time.Second, &cfg.HTTPReadTimeout},
		{"HTTP_WRITE_TIMEOUT", 10 * time.Second, &cfg.HTTPWriteTimeout},
		{"HTTP_IDLE_TIMEOUT", 120 * time.Second, &cfg.HTTPIdleTimeout},
		{"SHUTDOWN_TIMEOUT", 5 * time.Second, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = getEnvDuration(d.key, d.fallback); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// NewLogger builds the process logger: JSON in production, console otherwise.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q (use Go format: 30s, 1h, 15m)", key, value)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unsupported level %q (use debug, info, warn, error)", level)
	}
	return l, nil
}

func CorsConfig(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
