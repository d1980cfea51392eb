package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "world.yaml"

// Load loads the world configuration.
// Search order: customPath -> ~/.platformer/configs/world.yaml -> ./configs/world.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (WorldConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultWorldConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultWorldConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultWorldYAML)
	if err != nil {
		return DefaultWorldConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Path returns the file Load would read for customPath, or "" when it would
// fall back to the embedded default.
func Path(customPath string) string {
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

// ErrEmptyConfig is returned for a config file with no content, as seen
// while an editor is still saving it.
var ErrEmptyConfig = errors.New("config: empty config file")

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (WorldConfig, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultWorldConfig(), ErrEmptyConfig
	}
	cfg := DefaultWorldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultWorldConfig(), err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg WorldConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

func searchPaths() []string {
	paths := make([]string, 0, 2)
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		paths = append(paths, userCfgPath)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}
