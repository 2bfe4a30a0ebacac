package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration: defaults, then the config file, then flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	return cfg, nil
}

// EnvConfig names an environment variable holding a config file path. It is
// consulted after -config and before the standard locations.
const EnvConfig = "CUTAWAY_CONFIG"

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	var candidates []string
	if env := os.Getenv(EnvConfig); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates,
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Cutaway")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Cutaway")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "cutaway")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cutaway")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are errors so a
// misspelled setting does not silently keep its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
