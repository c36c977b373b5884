package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. Pointer fields
// distinguish "unset" from zero values so local and global files can be
// merged with CLI flags.
type FileConfig struct {
	// Enable restricts checking to the listed checker IDs.
	Enable *string `yaml:"enable"`
	// Disable removes the listed checker IDs.
	Disable *string `yaml:"disable"`
	// IgnoreKeys lists citation-key globs to skip entirely.
	IgnoreKeys []string `yaml:"ignore_keys"`
	// NoColor disables colorized output.
	NoColor *bool `yaml:"no_color"`
	// NoCache disables the check-result cache.
	NoCache *bool `yaml:"no_cache"`
	// DoubleActivationMS overrides the double-activation window of the
	// results dialog.
	DoubleActivationMS *int `yaml:"double_activation_ms"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file next to the library being checked.
// It supports .jabref.yml/.yaml and jabref.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".jabref.yml", ".jabref.yaml", "jabref.yml", "jabref.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "jabref", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
