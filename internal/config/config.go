package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Port          string `toml:"port"`
	DatabaseURL   string `toml:"database_url"`
	LogLevel      string `toml:"log_level"`
	PublicBaseURL string `toml:"public_base_url"`

	// Storage
	StorageBackend string `toml:"storage_backend"`
	MediaDir       string `toml:"media_dir"`

	// S3
	S3Endpoint        string `toml:"s3_endpoint"`
	S3AccessKeyID     string `toml:"s3_access_key_id"`
	S3SecretAccessKey string `toml:"s3_secret_access_key"`
	S3BucketName      string `toml:"s3_bucket_name"`
	S3UseSSL          bool   `toml:"s3_use_ssl"`

	// Upload and listing limits
	MaxFileSize     int64 `toml:"max_file_size"`
	PreviewRows     int   `toml:"preview_rows"`
	DefaultPageSize int   `toml:"default_page_size"`
	MaxPageSize     int   `toml:"max_page_size"`

	// Dashboard and CLI
	APIBaseURL    string `toml:"api_base_url"`
	DashboardPort string `toml:"dashboard_port"`
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Default returns the configuration used when neither a config file nor
// environment variables are present.
func Default() *Config {
	return &Config{
		Port:              "8000",
		DatabaseURL:       "data/visualizer.db",
		LogLevel:          "info",
		StorageBackend:    StorageLocal,
		MediaDir:          "media",
		S3Endpoint:        "localhost:9000",
		S3AccessKeyID:     "minioadmin",
		S3SecretAccessKey: "minioadmin",
		S3BucketName:      "equipment",
		MaxFileSize:       10 << 20,
		PreviewRows:       10,
		DefaultPageSize:   5,
		MaxPageSize:       100,
		APIBaseURL:        "http://127.0.0.1:8000",
		DashboardPort:     "3000",
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// CONFIG_FILE (or ./config.toml when it exists), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	path := getEnv("CONFIG_FILE", "config.toml")
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", cfg.PublicBaseURL)
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", cfg.StorageBackend)
	cfg.MediaDir = getEnv("MEDIA_DIR", cfg.MediaDir)
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3AccessKeyID = getEnv("S3_ACCESS_KEY_ID", cfg.S3AccessKeyID)
	cfg.S3SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", cfg.S3SecretAccessKey)
	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", cfg.S3BucketName)
	cfg.S3UseSSL = getEnvBool("S3_USE_SSL", cfg.S3UseSSL)
	cfg.APIBaseURL = getEnv("API_BASE_URL", cfg.APIBaseURL)
	cfg.DashboardPort = getEnv("DASHBOARD_PORT", cfg.DashboardPort)

	var err error
	if cfg.MaxFileSize, err = getEnvInt64("MAX_FILE_SIZE", cfg.MaxFileSize); err != nil {
		return nil, err
	}
	if cfg.PreviewRows, err = getEnvInt("PREVIEW_ROWS", cfg.PreviewRows); err != nil {
		return nil, err
	}
	if cfg.DefaultPageSize, err = getEnvInt("DEFAULT_PAGE_SIZE", cfg.DefaultPageSize); err != nil {
		return nil, err
	}
	if cfg.MaxPageSize, err = getEnvInt("MAX_PAGE_SIZE", cfg.MaxPageSize); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageLocal:
		if c.MediaDir == "" {
			return fmt.Errorf("MEDIA_DIR is required for local storage")
		}
	case StorageS3:
		if c.S3BucketName == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.PreviewRows <= 0 {
		return fmt.Errorf("PREVIEW_ROWS must be positive")
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive and not above MAX_PAGE_SIZE")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
