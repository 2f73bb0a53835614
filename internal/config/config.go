// Package config provides configuration loading for planterm.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the root configuration for the planterm client.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Logging LoggingConfig `koanf:"logging"`
	Upload  UploadConfig  `koanf:"upload"`
}

// ServerConfig describes the plant-care backend this client talks to.
type ServerConfig struct {
	// BaseURL is the backend root, e.g. http://localhost:8000.
	BaseURL string `koanf:"base_url"`
	// Timeout is the per-request ceiling. Generous and fixed; the client
	// never retries on its own.
	Timeout Duration `koanf:"timeout"`
}

// StorageConfig controls where durable session state lives.
type StorageConfig struct {
	// DataDir holds the JSON session files (snapshot, growth preview,
	// schedules). Defaults to ~/.local/share/planterm.
	DataDir string `koanf:"data_dir"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// UploadConfig bounds what image files may be submitted.
type UploadConfig struct {
	// MaxBytes is the size ceiling for an uploaded image.
	MaxBytes int64 `koanf:"max_bytes"`
	// Extensions is the filename allowlist, lowercase with dot.
	Extensions []string `koanf:"extensions"`
}

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultTimeout   = 60 * time.Second
	defaultMaxBytes  = 10 << 20 // 10MB
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

func defaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
}

// applyDefaults fills in zero values with production defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = defaultBaseURL
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = Duration(defaultTimeout)
	}
	if cfg.Storage.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Storage.DataDir = filepath.Join(home, ".local", "share", "planterm")
		}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
	if cfg.Upload.MaxBytes == 0 {
		cfg.Upload.MaxBytes = defaultMaxBytes
	}
	if len(cfg.Upload.Extensions) == 0 {
		cfg.Upload.Extensions = defaultExtensions()
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server.base_url is missing a host")
	}
	if c.Server.Timeout.Duration() <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	return nil
}

// AllowedExtension reports whether name passes the upload allowlist.
func (u *UploadConfig) AllowedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range u.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
