package wireguard

import "fmt"

// Status backends.
const (
	BackendExec   = "exec"
	BackendNative = "native"
)

// Config holds the configuration for tunnel control and status queries.
// Config is passed as a constructor argument; no file I/O in this package.
type Config struct {
	// Backend selects how interface state is queried: "exec" shells out to
	// ip(8) and wg(8), "native" talks netlink directly (Linux only).
	// Default: "exec"
	Backend string `yaml:"backend"`

	// ElevateQueries runs "wg show" through the elevation helper.
	ElevateQueries bool `yaml:"elevate_queries"`

	WGPath      string `yaml:"wg_path"`
	WGQuickPath string `yaml:"wg_quick_path"`
	IPPath      string `yaml:"ip_path"`
	LsPath      string `yaml:"ls_path"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendExec
	}
	if c.WGPath == "" {
		c.WGPath = "wg"
	}
	if c.WGQuickPath == "" {
		c.WGQuickPath = "wg-quick"
	}
	if c.IPPath == "" {
		c.IPPath = "ip"
	}
	if c.LsPath == "" {
		c.LsPath = "ls"
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendExec, BackendNative:
		return nil
	default:
		return fmt.Errorf("wireguard: config: unknown backend %q", c.Backend)
	}
}
