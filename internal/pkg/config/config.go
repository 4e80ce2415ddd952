package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const devSessionSecret = "pass-store-dev-secret"

type StoreConfig struct {
	Locale    string
	Currency  string
	FadeDelay time.Duration
	// CatalogPath is empty for the embedded catalog.
	CatalogPath string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	PprofAddr    string
	OTLPEndpoint string
}

type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   zapcore.Level
	// LogFormat is json or console; json by default in release mode.
	LogFormat     string
	Store         StoreConfig
	Session       SessionConfig
	Observability ObservabilityConfig
}

// LoadDotEnv reads .env files into the environment. Missing files are not an
// error; variables already set win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var err error
	cfg := &Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
		GinMode:    getEnvOrDefault("GIN_MODE", "release"),
		Store: StoreConfig{
			Locale:      getEnvOrDefault("STORE_LOCALE", "pt-BR"),
			Currency:    getEnvOrDefault("STORE_CURRENCY", "BRL"),
			CatalogPath: os.Getenv("CATALOG_PATH"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("OTEL_SERVICE_NAME", "pass-store"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
			OTLPEndpoint: getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4318"),
		},
	}

	if cfg.Store.FadeDelay, err = getDurationOrDefault("FADE_DELAY", 200*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = getDurationOrDefault("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = zapcore.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	defaultFormat := "console"
	if cfg.GinMode == "release" {
		defaultFormat = "json"
	}
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", defaultFormat)

	if cfg.Session.Secret == "" {
		if cfg.GinMode == "release" {
			return nil, fmt.Errorf("SESSION_SECRET environment variable is required in release mode")
		}
		cfg.Session.Secret = devSessionSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, value)
	}
	return d, nil
}
