package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Root is the archive root containing year directories (or the exact
	// year/month/day directory when ExactPath is set).
	Root string `yaml:"root"`
	// Dest is the destination root for the sync command.
	Dest string `yaml:"dest"`
	// Tag is the IPTC keyword the sync command selects on.
	Tag string `yaml:"tag"`

	// Preset narrows a run to one year, month and/or day; 0 means unset.
	Preset struct {
		Year  int `yaml:"year"`
		Month int `yaml:"month"`
		Day   int `yaml:"day"`
	} `yaml:"preset"`

	// ExactPath means Root is itself the preset directory.
	ExactPath bool `yaml:"exact_path"`

	// CacheMinutes is how long tag verdicts stay cached.
	CacheMinutes int `yaml:"cache_minutes"`
}

func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "." // Fallback to current directory
	}
	cfg := &Config{
		Root:         filepath.Join(home, "Pictures", "camera"),
		Dest:         filepath.Join(home, "Pictures", "synced"),
		Tag:          "",
		CacheMinutes: 30,
	}
	return cfg
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".photoarc", "config.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects preset components outside calendar ranges.
func (c *Config) Validate() error {
	if y := c.Preset.Year; y != 0 && (y < 1000 || y > 9999) {
		return fmt.Errorf("preset year %d is not a 4-digit year", y)
	}
	if m := c.Preset.Month; m != 0 && (m < 1 || m > 12) {
		return fmt.Errorf("preset month %d is out of range", m)
	}
	if d := c.Preset.Day; d != 0 && (d < 1 || d > 31) {
		return fmt.Errorf("preset day %d is out of range", d)
	}
	return nil
}

// HasPreset reports whether any preset component is set.
func (c *Config) HasPreset() bool {
	return c.Preset.Year != 0 || c.Preset.Month != 0 || c.Preset.Day != 0
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
