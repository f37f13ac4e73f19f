package keys

import (
	"fmt"
	"os"
	"path/filepath"
)

// Generator backends.
const (
	GeneratorExec   = "exec"
	GeneratorNative = "native"
)

// Config holds the configuration for host keypair provisioning.
type Config struct {
	// CacheDir holds the cached privatekey and publickey files.
	// Default: $HOME/.wireguard
	CacheDir string `yaml:"cache_dir"`

	// Generator selects how keys are produced: "exec" runs the wg tool,
	// "native" uses Curve25519 in-process.
	// Default: "exec"
	Generator string `yaml:"generator"`

	// WGPath is the wg binary used by the exec generator.
	// Default: "wg"
	WGPath string `yaml:"wg_path"`
}

// Cache file names inside CacheDir.
const (
	PrivateKeyFile = "privatekey"
	PublicKeyFile  = "publickey"
)

// DefaultCacheDirName is the directory under $HOME holding cached keys.
const DefaultCacheDirName = ".wireguard"

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.CacheDir == "" {
		home := os.Getenv("HOME")
		if home == "" {
			home, _ = os.UserHomeDir()
		}
		c.CacheDir = filepath.Join(home, DefaultCacheDirName)
	}
	if c.Generator == "" {
		c.Generator = GeneratorExec
	}
	if c.WGPath == "" {
		c.WGPath = "wg"
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Generator != GeneratorExec && c.Generator != GeneratorNative {
		return fmt.Errorf("keys: config: unknown generator %q", c.Generator)
	}
	return nil
}
