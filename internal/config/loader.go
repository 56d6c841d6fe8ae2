package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "helix.yaml"

// Load loads the helix configuration.
// Search order: customPath -> ~/.helix/configs/helix.yaml -> ./configs/helix.yaml -> embedded default
//
// Keys missing from a file keep their default values.
func Load(customPath string) (HelixConfig, error) {
	// A custom path must exist and parse
	if customPath != "" {
		return LoadFile(customPath)
	}

	for _, path := range searchPaths() {
		if cfg, err := LoadFile(path); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultHelixConfig()
	if err := yaml.Unmarshal(defaultHelixYAML, &cfg); err != nil {
		return DefaultHelixConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads and validates one config file.
func LoadFile(path string) (HelixConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HelixConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return HelixConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given format ("yaml" or "toml") over the
// defaults and validates the result.
func Parse(data []byte, format string) (HelixConfig, error) {
	cfg := DefaultHelixConfig()
	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return HelixConfig{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return HelixConfig{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return HelixConfig{}, err
	}
	return cfg, nil
}

// Resolve returns the file Load would read, or "" when it would fall back to
// the embedded defaults.
func Resolve(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Write encodes cfg to w in the given format.
func Write(w io.Writer, cfg HelixConfig, format string) error {
	if format == "toml" {
		return toml.NewEncoder(w).Encode(cfg)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".helix", "configs", filename)
}

// HomeDir returns ~/.helix, or "" if home is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".helix")
}
