package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in every search directory.
const FileName = "stack.yaml"

// Source describes where a loaded configuration came from.
type Source string

const (
	SourceEmbedded  Source = "embedded"
	SourceHardcoded Source = "hardcoded"
)

// LoadStack loads the stack configuration.
// Search order: customPath -> ~/.stack/configs/stack.yaml -> ./configs/stack.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadStack(customPath string) (StackConfig, Source, error) {
	return loadStack(customPath, SearchPaths())
}

// SearchPaths returns the candidate config files in lookup order.
func SearchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

func loadStack(customPath string, searchPaths []string) (StackConfig, Source, error) {
	// A custom path is explicit, so its errors are fatal
	if customPath != "" {
		cfg, err := readStack(customPath)
		if err != nil {
			return cfg, Source(customPath), err
		}
		return cfg, Source(customPath), nil
	}

	for _, path := range searchPaths {
		cfg, err := readStack(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return cfg, Source(path), err
		}
		return cfg, Source(path), nil
	}

	// Use embedded default YAML
	cfg, err := parseStack(defaultStackYAML)
	if err != nil {
		return DefaultStackConfig(), SourceHardcoded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

func readStack(path string) (StackConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StackConfig{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := parseStack(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parseStack decodes YAML over the defaults and validates the result.
func parseStack(data []byte) (StackConfig, error) {
	cfg := DefaultStackConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg StackConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stack", "configs", filename)
}
