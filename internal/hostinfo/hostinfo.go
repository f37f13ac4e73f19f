// Package hostinfo reports facts about the local host for display.
//
// Every lookup is a single blocking call that degrades to a fixed literal on
// failure. Nothing is retried or cached.
package hostinfo

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"os/user"
	"strings"

	"github.com/miekg/dns"
	"github.com/shirou/gopsutil/v4/host"
)

// Fallback literals.
const (
	Unknown     = "unknown"
	Unavailable = "unavailable"
)

// Info is a snapshot of host facts.
type Info struct {
	Username           string
	Hostname           string
	OS                 string
	OutboundIP         string
	DNSServers         string
	WireGuardInstalled bool
}

// Collector performs host lookups.
type Collector struct {
	cfg    Config
	logger *slog.Logger

	hostInfo func(ctx context.Context) (*host.InfoStat, error)
	routeSrc func(dst net.IP) (net.IP, error)
	lookPath func(file string) (string, error)
}

// New creates a Collector. Config defaults are applied automatically.
func New(cfg Config, logger *slog.Logger) *Collector {
	cfg.ApplyDefaults()
	return &Collector{
		cfg:      cfg,
		logger:   logger.With("component", "hostinfo"),
		hostInfo: host.InfoWithContext,
		routeSrc: routeSource,
		lookPath: exec.LookPath,
	}
}

// Collect gathers all host facts.
func (c *Collector) Collect(ctx context.Context) Info {
	info := Info{
		Username:           c.Username(),
		OutboundIP:         c.OutboundIP(),
		DNSServers:         c.DNSServers(),
		WireGuardInstalled: c.WireGuardInstalled(),
	}
	info.Hostname, info.OS = c.hostAndOS(ctx)
	return info
}

// Username returns the current user's login name.
func (c *Collector) Username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return Unknown
}

// Hostname returns the host name.
func (c *Collector) Hostname(ctx context.Context) string {
	name, _ := c.hostAndOS(ctx)
	return name
}

// OS returns the distribution name and version, e.g. "ubuntu 24.04".
func (c *Collector) OS(ctx context.Context) string {
	_, osName := c.hostAndOS(ctx)
	return osName
}

func (c *Collector) hostAndOS(ctx context.Context) (hostname, osName string) {
	hi, err := c.hostInfo(ctx)
	if err != nil || hi == nil {
		c.logger.Debug("host info lookup failed", "error", err)
		return Unknown, Unknown
	}

	hostname = hi.Hostname
	if hostname == "" {
		hostname = Unknown
	}
	osName = strings.TrimSpace(hi.Platform + " " + hi.PlatformVersion)
	if osName == "" {
		osName = hi.OS
	}
	if osName == "" {
		osName = Unknown
	}
	return hostname, osName
}

// OutboundIP returns the preferred source address of the route towards the
// configured route target.
func (c *Collector) OutboundIP() string {
	src, err := c.routeSrc(net.ParseIP(c.cfg.RouteTarget))
	if err != nil || src == nil {
		c.logger.Debug("outbound route lookup failed", "error", err)
		return Unknown
	}
	return src.String()
}

// DNSServers returns the configured name servers, comma separated.
func (c *Collector) DNSServers() string {
	conf, err := dns.ClientConfigFromFile(c.cfg.ResolvConf)
	if err != nil || len(conf.Servers) == 0 {
		c.logger.Debug("resolver config unavailable",
			"path", c.cfg.ResolvConf,
			"error", err,
		)
		return Unavailable
	}
	return strings.Join(conf.Servers, ", ")
}

// WireGuardInstalled reports whether the wg binary is on PATH.
func (c *Collector) WireGuardInstalled() bool {
	_, err := c.lookPath(c.cfg.WGPath)
	return err == nil
}
