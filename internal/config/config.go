// Package config handles loading and saving user configuration for letters.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/f3rmion/letters/internal/letters"
	"github.com/f3rmion/letters/internal/report"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.yaml"

// Style selects how reports are rendered on stdout.
type Style string

const (
	StyleAuto  Style = "auto"  // Styled when stdout is a terminal
	StylePlain Style = "plain" // Always bare lines
	StyleColor Style = "color" // Always styled
)

// Config holds all user configuration.
type Config struct {
	TotalLabel string     `yaml:"total_label"`
	Style      Style      `yaml:"style"`
	Parallel   bool       `yaml:"parallel"` // Run the two passes concurrently
	Copy       bool       `yaml:"copy"`     // Also copy reports to the clipboard
	Single     PassConfig `yaml:"single"`
	Double     PassConfig `yaml:"double"`
}

// PassConfig configures one counting pass.
type PassConfig struct {
	Class letters.Class `yaml:"class"`
	Title string        `yaml:"title"`
}

// Default returns the built-in configuration: vowels from single letters,
// consonants from doubled letters.
func Default() *Config {
	return &Config{
		TotalLabel: report.DefaultTotalLabel,
		Style:      StyleAuto,
		Single: PassConfig{
			Class: letters.ClassVowel,
			Title: "Vowels",
		},
		Double: PassConfig{
			Class: letters.ClassConsonant,
			Title: "Doubled consonants",
		},
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Style {
	case StyleAuto, StylePlain, StyleColor:
	default:
		return fmt.Errorf("unknown style: %q", c.Style)
	}

	var err error
	if c.Single.Class, err = letters.ParseClass(string(c.Single.Class)); err != nil {
		return fmt.Errorf("single: %w", err)
	}
	if c.Double.Class, err = letters.ParseClass(string(c.Double.Class)); err != nil {
		return fmt.Errorf("double: %w", err)
	}
	return nil
}

// Load reads config.yaml from dir on top of the defaults. A missing file
// yields the defaults.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to config.yaml in dir.
func Save(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "letters"), nil
}
