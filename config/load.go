//go:build !(rp2040 || rp2350)

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load overlays the file at path on Default and validates the result.
// The format is chosen by extension: .toml, .yaml or .yml.
func Load(path string) (Firmware, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Firmware{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse overlays data, in the format named by ext, on Default.
func Parse(data []byte, ext string) (Firmware, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Firmware{}, fmt.Errorf("parse TOML config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Firmware{}, fmt.Errorf("parse YAML config: %w", err)
		}
	default:
		return Firmware{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return Firmware{}, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}
