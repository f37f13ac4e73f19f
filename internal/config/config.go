// Package config loads the tunnelctl configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/plexsphere/tunnelctl/internal/command"
	"github.com/plexsphere/tunnelctl/internal/hostinfo"
	"github.com/plexsphere/tunnelctl/internal/keys"
	"github.com/plexsphere/tunnelctl/internal/store"
	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// AppConfig is the top-level tunnelctl configuration. It aggregates all
// package configurations and is populated from a YAML file via ParseConfig.
type AppConfig struct {
	// LogLevel is the log level: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	Elevation command.Config   `yaml:"elevation"`
	Store     store.Config     `yaml:"store"`
	Keys      keys.Config      `yaml:"keys"`
	WireGuard wireguard.Config `yaml:"wireguard"`
	HostInfo  hostinfo.Config  `yaml:"hostinfo"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *AppConfig) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Elevation.ApplyDefaults()
	c.Store.ApplyDefaults()
	c.Keys.ApplyDefaults()
	c.WireGuard.ApplyDefaults()
	c.HostInfo.ApplyDefaults()
}

// Validate checks that required fields are set and values are acceptable.
func (c *AppConfig) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	if err := c.Elevation.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Keys.Validate(); err != nil {
		return err
	}
	if err := c.WireGuard.Validate(); err != nil {
		return err
	}
	if err := c.HostInfo.Validate(); err != nil {
		return err
	}
	return nil
}

// DefaultPath returns $HOME/.config/tunnelctl/config.yaml, or "" when the
// home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tunnelctl", "config.yaml")
}

// ParseConfig reads a YAML configuration file and returns an AppConfig.
// It applies defaults and validates the configuration.
func ParseConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration at path. An empty path selects DefaultPath,
// where a missing file yields the defaults. A missing file named explicitly
// is an error.
func Load(path string) (*AppConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		cfg, err := ParseConfig(path)
		if err == nil || explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	var cfg AppConfig
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
