package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr            = ":5000"
	defaultContentRoot     = "web"
	defaultStoreDir        = "web/static/qr_images"
	defaultIndexFile       = "index.html"
	defaultMaxUploadBytes  = 10 << 20
	defaultShutdownTimeout = 5 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
)

// Config holds everything the server needs at startup
type Config struct {
	Addr            string
	ContentRoot     string
	StoreDir        string
	IndexFile       string
	MaxUploadBytes  int64
	WatchStore      bool
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Unset variables take defaults.
// Only unparseable values fail here; call Validate once flags have been applied.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        getEnv("QRSTORE_ADDR", defaultAddr),
		ContentRoot: getEnv("QRSTORE_CONTENT_ROOT", defaultContentRoot),
		StoreDir:    getEnv("QRSTORE_STORE_DIR", defaultStoreDir),
		IndexFile:   getEnv("QRSTORE_INDEX_FILE", defaultIndexFile),
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", defaultLogFormat),
	}

	var err error
	if cfg.MaxUploadBytes, err = getEnvInt64("QRSTORE_MAX_UPLOAD_BYTES", defaultMaxUploadBytes); err != nil {
		return nil, err
	}
	if cfg.WatchStore, err = getEnvBool("QRSTORE_WATCH_STORE", true); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("QRSTORE_SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.ContentRoot == "" {
		return fmt.Errorf("content root cannot be empty")
	}
	if c.StoreDir == "" {
		return fmt.Errorf("store directory cannot be empty")
	}
	if c.IndexFile == "" {
		return fmt.Errorf("index file cannot be empty")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max upload bytes cannot be negative: %d", c.MaxUploadBytes)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive: %s", c.ShutdownTimeout)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
