package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=apgbuilders port=5432 sslmode=disable"

type Config struct {
	HTTPPort         string
	DatabaseDSN      string
	CORSOrigins      string
	LogLevel         string
	LogJSON          bool
	DBAutoMigrate    bool
	ExportFilePrefix string // <prefix>-<YYYY-MM-DD>.csv
}

// Load reads the configuration from the environment, after merging an
// optional .env file in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", defaultDSN),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogJSON:          getBool("LOG_JSON", false),
		DBAutoMigrate:    getBool("DB_AUTO_MIGRATE", true),
		ExportFilePrefix: getEnv("EXPORT_FILE_PREFIX", "apgbuilders-data"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Warnings lists settings that still carry their development defaults.
func (c *Config) Warnings() []string {
	var out []string
	if c.DatabaseDSN == defaultDSN {
		out = append(out, "DATABASE_DSN uses the development default; set your own Postgres DSN in production")
	}
	if c.CORSOrigins == "http://localhost:5173" {
		out = append(out, "CORS_ALLOWED_ORIGINS uses the development default; set your own domain in production")
	}
	return out
}

// Origins splits CORSOrigins on commas and trims each entry.
func (c *Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) validate() error {
	var errs []string

	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil {
		errs = append(errs, fmt.Sprintf("HTTP_PORT %q must be a number", c.HTTPPort))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("HTTP_PORT %d must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.DatabaseDSN) == "" {
		errs = append(errs, "DATABASE_DSN is required")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL %q must be one of debug, info, warn, error", c.LogLevel))
	}

	if strings.TrimSpace(c.ExportFilePrefix) == "" {
		errs = append(errs, "EXPORT_FILE_PREFIX must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
