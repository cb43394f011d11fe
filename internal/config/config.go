// Package config provides configuration loading and structs for doctext.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/doctext/internal/models"
	"gopkg.in/yaml.v3"
)

// FileName is the optional config file looked up in the working directory.
const FileName = "doctext.yaml"

// Config holds all configuration for the application.
type Config struct {
	Debug   bool         `yaml:"debug"`
	BaseDir string       `yaml:"base_dir"`
	Jobs    []models.Job `yaml:"jobs"`
}

// Load reads and parses the config file at path, applies defaults, and resolves job paths.
// Returns an error if the file cannot be read or parsed, or a job is invalid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := finish(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists; otherwise it returns the built-in defaults.
// The second result reports whether a file was read.
func LoadOrDefault(path string) (*Config, bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			if err := finish(cfg); err != nil {
				return nil, false, err
			}
			return cfg, false, nil
		}
		return nil, false, fmt.Errorf("failed to stat config: %w", err)
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func finish(cfg *Config) error {
	ApplyDefaults(cfg)
	for i := range cfg.Jobs {
		j := &cfg.Jobs[i]
		j.Input = resolvePath(j.Input, cfg.BaseDir)
		j.Output = resolvePath(j.Output, cfg.BaseDir)
		if err := j.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		j.Kind = j.ResolvedKind()
	}
	return nil
}

// resolvePath joins relative paths onto baseDir. Absolute paths and paths
// carrying a Windows volume name are kept as written.
func resolvePath(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || hasWindowsVolume(path) || baseDir == "" {
		return path
	}
	if hasWindowsVolume(baseDir) {
		return baseDir + `\` + path
	}
	return filepath.Join(baseDir, path)
}

// hasWindowsVolume reports whether p starts with a drive letter such as C:.
func hasWindowsVolume(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
