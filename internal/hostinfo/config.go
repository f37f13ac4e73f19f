package hostinfo

import (
	"errors"
	"net"
)

// Config holds the configuration for host introspection.
type Config struct {
	// ResolvConf is the resolver configuration read for DNS servers.
	// Default: "/etc/resolv.conf"
	ResolvConf string `yaml:"resolv_conf"`

	// RouteTarget is the destination used to pick the outbound route.
	// Default: "1.1.1.1"
	RouteTarget string `yaml:"route_target"`

	// WGPath is the binary whose presence means WireGuard tools are installed.
	// Default: "wg"
	WGPath string `yaml:"wg_path"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.ResolvConf == "" {
		c.ResolvConf = "/etc/resolv.conf"
	}
	if c.RouteTarget == "" {
		c.RouteTarget = "1.1.1.1"
	}
	if c.WGPath == "" {
		c.WGPath = "wg"
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if net.ParseIP(c.RouteTarget) == nil {
		return errors.New("hostinfo: config: RouteTarget must be an IP address")
	}
	return nil
}
