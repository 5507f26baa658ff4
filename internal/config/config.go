// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents application configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via environment variables or CLI flags.
type Config struct {
	// Server
	Addr           string   `json:"addr,omitempty"`            // Listen address, e.g. ":8080"
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins

	// Backends
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Redis connection URL for share links

	// Integrations
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key for suggestions
	ChromePath string `json:"chrome_path,omitempty"` // Chrome binary for PDF export

	// Editing
	HistoryLimit int  `json:"history_limit,omitempty"` // Max undo depth per session, 0 = unlimited
	Verbose      bool `json:"verbose,omitempty"`       // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() *Config {
	return &Config{
		Addr:        os.Getenv("RESUMATE_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		ChromePath:  os.Getenv("CHROME_PATH"),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config error: 'history_limit' must be non-negative")
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.HistoryLimit == 0 {
		result.HistoryLimit = defaults.HistoryLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
