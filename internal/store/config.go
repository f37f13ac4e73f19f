package store

import (
	"errors"
	"os"
)

// Config holds the configuration for profile persistence.
type Config struct {
	// ConfigDir is the privileged directory owned by the tunnel tool.
	// Default: /etc/wireguard
	ConfigDir string `yaml:"config_dir"`

	// StagingDir holds the unprivileged mirror and the temporary file used
	// for elevated copies.
	// Default: os.TempDir()
	StagingDir string `yaml:"staging_dir"`
}

// DefaultConfigDir is the default privileged configuration directory.
const DefaultConfigDir = "/etc/wireguard"

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.ConfigDir == "" {
		c.ConfigDir = DefaultConfigDir
	}
	if c.StagingDir == "" {
		c.StagingDir = os.TempDir()
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.ConfigDir == "" {
		return errors.New("store: config: ConfigDir is required")
	}
	if c.StagingDir == "" {
		return errors.New("store: config: StagingDir is required")
	}
	if c.ConfigDir == c.StagingDir {
		return errors.New("store: config: ConfigDir and StagingDir must differ")
	}
	return nil
}
