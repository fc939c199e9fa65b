// Package config loads and saves motion-list configuration files.
//
// Files are TOML renderings of motion.Config: a [space] table plus
// index-keyed [exclusion.N] and [layer.N] tables. The same mapping the
// engine exports round-trips through this package unchanged.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/banshee-data/probe.motion/internal/motion"
)

// maxFileSize caps config reads; motion configs are small and a larger
// file is always a mistake.
const maxFileSize = 1 * 1024 * 1024

// Load reads a motion-list configuration from a TOML file. The path must
// carry a .toml extension.
func Load(path string) (*motion.Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".toml" {
		return nil, fmt.Errorf("config file must have .toml extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg motion.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}
	return &cfg, nil
}

// LoadMotionList loads a configuration file and constructs the motion
// list it describes. Construction errors from the engine (validation,
// registry, dimension mismatches) pass through unwrapped so callers can
// inspect them with errors.As.
func LoadMotionList(path string) (*motion.MotionList, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return motion.NewMotionListFromConfig(*cfg)
}

// Save writes a motion-list configuration to a TOML file.
func Save(path string, cfg motion.Config) error {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".toml" {
		return fmt.Errorf("config file must have .toml extension, got %q", ext)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config TOML: %w", err)
	}
	if err := os.WriteFile(cleanPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
