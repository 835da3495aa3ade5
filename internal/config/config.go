package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no config file exists at the searched places.
var ErrNotFound = errors.New("no config file")

// FileConfig is the on-disk YAML configuration. Nil fields are unset.
type FileConfig struct {
	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	MaxBytes        *int64  `yaml:"max_bytes,omitempty"`
	Threads         *int    `yaml:"threads,omitempty"`
	Workers         *int    `yaml:"workers,omitempty"`
	Timeout         *string `yaml:"timeout,omitempty"`
	BannerTimeout   *string `yaml:"banner_timeout,omitempty"`
	PatternsFile    *string `yaml:"patterns_file,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	Store           *string `yaml:"store,omitempty"`
	Baseline        *string `yaml:"baseline,omitempty"`
}

// LocalNames are searched, in order, in the scan root.
var LocalNames = []string{".freesscan.yml", ".freesscan.yaml", "freesscan.yml", "freesscan.yaml"}

// LoadFile reads and validates a YAML config file.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal loads the first of LocalNames present in root.
func LoadLocal(root string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNotFound
}

// GlobalPath is $XDG_CONFIG_HOME/freesscan/config.yml, falling back to
// ~/.config.
func GlobalPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home == "" {
			return "", errors.New("no config dir")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "freesscan", "config.yml"), nil
}

func LoadGlobal() (FileConfig, error) {
	p, err := GlobalPath()
	if err != nil {
		return FileConfig{}, err
	}
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, ErrNotFound
	}
	return LoadFile(p)
}

// Validate checks values that YAML decoding cannot.
func (fc FileConfig) Validate() error {
	if _, err := parseDuration("timeout", fc.Timeout); err != nil {
		return err
	}
	if _, err := parseDuration("banner_timeout", fc.BannerTimeout); err != nil {
		return err
	}
	if fc.MaxBytes != nil && *fc.MaxBytes <= 0 {
		return fmt.Errorf("max_bytes must be positive")
	}
	if fc.Threads != nil && *fc.Threads < 0 {
		return fmt.Errorf("threads must not be negative")
	}
	if fc.Workers != nil && *fc.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}

// TimeoutDuration returns the parsed timeout, or zero when unset.
func (fc FileConfig) TimeoutDuration() time.Duration {
	d, _ := parseDuration("timeout", fc.Timeout)
	return d
}

func (fc FileConfig) BannerTimeoutDuration() time.Duration {
	d, _ := parseDuration("banner_timeout", fc.BannerTimeout)
	return d
}

func parseDuration(field string, s *string) (time.Duration, error) {
	if s == nil || *s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return d, nil
}

// Write stores cfg as YAML at path, refusing to overwrite unless force.
func Write(path string, cfg FileConfig, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
