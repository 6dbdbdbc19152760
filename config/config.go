package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageDriverSupabase = "supabase"
	StorageDriverMinio    = "minio"
)

// Config holds everything the web app reads from the environment at start.
type Config struct {
	Port      string `validate:"required,numeric"`
	LogLevel  string
	LogFormat string `validate:"oneof=json text"`
	// MaxUploadMB caps the request body, and with it the uploaded file.
	MaxUploadMB int `validate:"min=1"`

	// Service endpoint and public API key of the hosted backend. Either may be
	// empty; the app still starts and every backend call fails.
	SupabaseURL string `validate:"omitempty,url"`
	SupabaseKey string

	ResourcesTable string `validate:"required"`
	StorageDriver  string `validate:"oneof=supabase minio"`
	StorageBucket  string `validate:"required"`
	StorageFolder  string

	Minio MinioConfig

	RequireFile         bool
	RecordAttribution   bool
	DefaultCreatorEmail string `validate:"omitempty,email"`
	ColorTheme          string
	UploadRedirect      bool
	CleanupOrphans      bool
}

// MinioConfig configures the S3-compatible storage driver.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PublicURL string `validate:"omitempty,url"`
}

var validate = validator.New()

// Load reads the configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	var errs []error
	boolEnv := func(key string, def bool) bool {
		v, err := getEnvAsBool(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	intEnv := func(key string, def int) int {
		v, err := getEnvAsInt(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),

		MaxUploadMB: intEnv("MAX_UPLOAD_MB", 50),

		SupabaseURL: strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey: getEnv("SUPABASE_ANON_KEY", os.Getenv("SUPABASE_SERVICE_KEY")),

		ResourcesTable: getEnv("RESOURCES_TABLE", "resources"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverSupabase)),
		StorageBucket:  getEnv("STORAGE_BUCKET", "resources"),
		StorageFolder:  getEnv("STORAGE_FOLDER", "uploads"),

		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			UseSSL:    boolEnv("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},

		RequireFile:         boolEnv("REQUIRE_FILE", true),
		RecordAttribution:   boolEnv("RECORD_ATTRIBUTION", true),
		DefaultCreatorEmail: getEnv("DEFAULT_CREATOR_EMAIL", "anonymous@example.com"),
		ColorTheme:          getEnv("COLOR_THEME", "green"),
		UploadRedirect:      boolEnv("UPLOAD_REDIRECT", true),
		CleanupOrphans:      boolEnv("CLEANUP_ORPHANS", false),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field formats and the settings required by the selected
// storage driver.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.StorageDriver == StorageDriverMinio && c.Minio.Endpoint == "" {
		return errors.New("invalid configuration: MINIO_ENDPOINT is required when STORAGE_DRIVER=minio")
	}
	return nil
}

// BodyLimit returns MaxUploadMB in bytes.
func (c *Config) BodyLimit() int {
	return c.MaxUploadMB * 1024 * 1024
}

// StorageURL returns the Supabase Storage API base.
func (c *Config) StorageURL() string {
	return c.SupabaseURL + "/storage/v1"
}

// HasSupabaseCredentials reports whether both connection parameters are set.
func (c *Config) HasSupabaseCredentials() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	return b, nil
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %q is not an integer", key, value)
	}
	return n, nil
}
