// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings.
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database settings.
	DatabaseURL string

	// Gemini settings. An empty API key leaves the summary endpoint
	// returning 500 until the process is restarted with one.
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string // Overridable for tests; empty means the public API.
	UpstreamTimeout time.Duration

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string

	// Operational settings.
	LogLevel            string
	MaxRequestBodyBytes int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Port:            envInt("PAPYRUS_PORT", 5000, &errs),
		ReadTimeout:     envDuration("PAPYRUS_READ_TIMEOUT", 30*time.Second, &errs),
		WriteTimeout:    envDuration("PAPYRUS_WRITE_TIMEOUT", 30*time.Second, &errs),
		DatabaseURL:     envStr("DATABASE_URL", ""),
		GeminiAPIKey:    envStr("GEMINI_API_KEY", ""),
		GeminiModel:     envStr("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		GeminiBaseURL:   envStr("GEMINI_BASE_URL", ""),
		UpstreamTimeout: envDuration("PAPYRUS_UPSTREAM_TIMEOUT", 30*time.Second, &errs),
		OTELEndpoint:    envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", false, &errs),
		ServiceName:     envStr("OTEL_SERVICE_NAME", "papyrus"),
		LogLevel:        envStr("PAPYRUS_LOG_LEVEL", "info"),
		MaxRequestBodyBytes: int64(envInt("PAPYRUS_MAX_REQUEST_BODY_BYTES",
			1*1024*1024, &errs)),
	}

	// DATABASE_URL wins when set; otherwise assemble from the discrete
	// DB_* variables the original deployment used.
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = dsnFromParts()
	}

	if len(errs) > 0 {
		return Config{}, errs[0]
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL (or DB_HOST/DB_NAME/DB_USER) is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PAPYRUS_PORT must be in (0, 65535]")
	}
	if c.MaxRequestBodyBytes <= 0 {
		return fmt.Errorf("config: PAPYRUS_MAX_REQUEST_BODY_BYTES must be positive")
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("config: PAPYRUS_UPSTREAM_TIMEOUT must be positive")
	}
	return nil
}

// dsnFromParts builds a Postgres DSN from the discrete DB_* environment
// variables. Returns empty when the mandatory parts are missing.
func dsnFromParts() string {
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	user := os.Getenv("DB_USER")
	if host == "" || name == "" || user == "" {
		return ""
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	pass := os.Getenv("DB_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("config: %s=%q is not a valid integer", key, v))
		return defaultVal
	}
	return n
}

func envBool(key string, defaultVal bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("config: %s=%q is not a valid boolean", key, v))
		return defaultVal
	}
	return b
}

func envDuration(key string, defaultVal time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("config: %s=%q is not a valid duration", key, v))
		return defaultVal
	}
	return d
}
