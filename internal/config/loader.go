package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is the configuration file name looked up in the
	// current and home directories.
	DefaultConfigFile = ".medphys.yaml"

	// XDGConfigFile is the configuration file name inside the XDG config directory.
	XDGConfigFile = "config.yaml"
)

// LoadFile reads a YAML configuration file on top of the defaults of NewConfig.
// Relative directories in the file are taken relative to the file itself.
// The result is not validated; call Validate before use.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.Dirs.BaseReportDir = resolvePath(base, cfg.Dirs.BaseReportDir)
	cfg.Dirs.TemplatesDir = resolvePath(base, cfg.Dirs.TemplatesDir)
	cfg.Dirs.Database = resolvePath(base, cfg.Dirs.Database)

	return cfg, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, if specified
//  2. .medphys.yaml in the current directory
//  3. .medphys.yaml in the user's home directory
//  4. config.yaml in the XDG config directory
//
// Returns the path of the first existing file, or an empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Load finds, reads and validates the configuration.
// An explicit configPath that does not exist is an error, as is finding no
// file at all.
func Load(configPath string) (*Config, error) {
	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w (run \"medphys init\" to create one)", ErrConfigNotFound)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// resolvePath expands a leading "~/" and makes relative paths relative to base.
func resolvePath(base, path string) string {
	if path == "" {
		return path
	}
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
