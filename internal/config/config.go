// Package config loads sync-corpus settings from an optional YAML file and
// SYNC_CORPUS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cours-de-latin/synccorpus"
)

// LogConfig selects the diagnostics format.
type LogConfig struct {
	// Format is text, json or auto.
	Format string `yaml:"format"`
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
}

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// Config is the full configuration.
type Config struct {
	Encoding string       `yaml:"encoding"`
	Locale   string       `yaml:"locale"`
	Log      LogConfig    `yaml:"log"`
	Server   ServerConfig `yaml:"server"`
	Batch    BatchConfig  `yaml:"batch"`
}

const (
	defaultAddr           = ":8080"
	defaultMaxUploadBytes = 64 << 20
	defaultConcurrency    = 4
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Encoding: "utf-8",
		Log:      LogConfig{Format: "auto", Level: "info"},
		Server: ServerConfig{
			Addr:           defaultAddr,
			AllowedOrigins: []string{"*"},
			MaxUploadBytes: defaultMaxUploadBytes,
		},
		Batch: BatchConfig{Concurrency: defaultConcurrency},
	}
}

// Load starts from Default, applies the YAML file at path (if path is not
// empty) and then the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Encoding = envOr("SYNC_CORPUS_ENCODING", cfg.Encoding)
	cfg.Locale = envOr("SYNC_CORPUS_LOCALE", cfg.Locale)
	cfg.Log.Format = envOr("SYNC_CORPUS_LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Level = envOr("SYNC_CORPUS_LOG_LEVEL", cfg.Log.Level)
	cfg.Server.Addr = envOr("SYNC_CORPUS_ADDR", cfg.Server.Addr)
	if v := os.Getenv("SYNC_CORPUS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	cfg.Server.MaxUploadBytes = envInt64("SYNC_CORPUS_MAX_UPLOAD_BYTES", cfg.Server.MaxUploadBytes)
	cfg.Batch.Concurrency = envInt("SYNC_CORPUS_BATCH_CONCURRENCY", cfg.Batch.Concurrency)

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		cfg.Server.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Batch.Concurrency <= 0 {
		cfg.Batch.Concurrency = defaultConcurrency
	}
	return cfg, nil
}

// Validate checks the values that Load cannot default.
func (c Config) Validate() error {
	if _, err := synccorpus.LookupEncoding(c.Encoding); err != nil {
		return err
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
		}
	}
	switch c.Log.Format {
	case "text", "json", "auto":
	default:
		return fmt.Errorf("invalid log format %q (want text, json or auto)", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return errors.New("server.allowed_origins must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
