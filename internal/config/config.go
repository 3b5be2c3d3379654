// Package config provides configuration loading for the wakachi server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kotoba/wakachi/internal/scoring"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool            `yaml:"debug"`
	Server   ServerConfig    `yaml:"server"`
	Lexicon  LexiconConfig   `yaml:"lexicon"`
	Analysis AnalysisConfig  `yaml:"analysis"`
	Scoring  *scoring.Config `yaml:"scoring"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LexiconConfig holds the dictionary database location.
type LexiconConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// AnalysisConfig holds request-level analysis settings.
type AnalysisConfig struct {
	// DefaultLimit is the number of segmentations returned when a request
	// does not ask for a specific count.
	DefaultLimit int `yaml:"default_limit"`
	// MaxLimit caps the per-request segmentation count.
	MaxLimit int `yaml:"max_limit"`
	// MaxInputRunes rejects inputs longer than this before analysis.
	MaxInputRunes int `yaml:"max_input_runes"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Scoring weights absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{Scoring: scoring.DefaultConfig()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Lexicon.DatabasePath = expandPath(cfg.Lexicon.DatabasePath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
