package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/newton.yaml
var defaultYAML []byte

// Load reads the configuration.
// Search order: customPath -> ~/.newton/config.yaml -> ./configs/newton.yaml -> embedded default.
// The first file that exists wins; a file that exists but cannot be read or
// parsed is an error rather than a silent fallback.
// Settings missing from a file keep their default value.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		return loadFile(customPath)
	}
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return loadFile(p)
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath("config.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "newton.yaml"))
}

// Parse decodes YAML over the default configuration and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".newton", filename)
}
