package hostinfo

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/shirou/gopsutil/v4/host"
)

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}

func newTestCollector(t *testing.T, resolv string) *Collector {
	t.Helper()
	c := New(Config{ResolvConf: resolv}, discardLogger())
	c.hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "laptop", OS: "linux", Platform: "debian", PlatformVersion: "12.5"}, nil
	}
	c.routeSrc = func(net.IP) (net.IP, error) { return net.ParseIP("192.168.1.20"), nil }
	c.lookPath = func(string) (string, error) { return "/usr/bin/wg", nil }
	return c
}

func writeResolv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resolv.conf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.ResolvConf != "/etc/resolv.conf" || cfg.RouteTarget != "1.1.1.1" || cfg.WGPath != "wg" {
		t.Errorf("ApplyDefaults() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	cfg.RouteTarget = "one.one.one.one"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-IP route target")
	}
}

func TestCollect(t *testing.T) {
	resolv := writeResolv(t, "# generated\nnameserver 9.9.9.9\nnameserver 1.1.1.1\nsearch lan\n")
	c := newTestCollector(t, resolv)

	info := c.Collect(context.Background())
	if info.Hostname != "laptop" {
		t.Errorf("Hostname = %q", info.Hostname)
	}
	if info.OS != "debian 12.5" {
		t.Errorf("OS = %q", info.OS)
	}
	if info.OutboundIP != "192.168.1.20" {
		t.Errorf("OutboundIP = %q", info.OutboundIP)
	}
	if info.DNSServers != "9.9.9.9, 1.1.1.1" {
		t.Errorf("DNSServers = %q", info.DNSServers)
	}
	if !info.WireGuardInstalled {
		t.Error("WireGuardInstalled = false")
	}
	if info.Username == "" {
		t.Error("Username is empty")
	}
}

func TestFallbacks(t *testing.T) {
	c := newTestCollector(t, filepath.Join(t.TempDir(), "missing"))
	c.hostInfo = func(context.Context) (*host.InfoStat, error) { return nil, errors.New("boom") }
	c.routeSrc = func(net.IP) (net.IP, error) { return nil, errors.New("network unreachable") }
	c.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	info := c.Collect(context.Background())
	if info.Hostname != Unknown || info.OS != Unknown {
		t.Errorf("Hostname/OS = %q/%q, want %q", info.Hostname, info.OS, Unknown)
	}
	if info.OutboundIP != Unknown {
		t.Errorf("OutboundIP = %q", info.OutboundIP)
	}
	if info.DNSServers != Unavailable {
		t.Errorf("DNSServers = %q, want %q", info.DNSServers, Unavailable)
	}
	if info.WireGuardInstalled {
		t.Error("WireGuardInstalled = true")
	}
}

func TestOS_FallsBackToKernelFamily(t *testing.T) {
	c := newTestCollector(t, "")
	c.hostInfo = func(context.Context) (*host.InfoStat, error) { return &host.InfoStat{OS: "linux"}, nil }

	if got := c.OS(context.Background()); got != "linux" {
		t.Errorf("OS = %q, want linux", got)
	}
	if got := c.Hostname(context.Background()); got != Unknown {
		t.Errorf("Hostname = %q, want %q", got, Unknown)
	}
}

func TestDNSServers_NoNameservers(t *testing.T) {
	c := newTestCollector(t, writeResolv(t, "search lan\n"))
	if got := c.DNSServers(); got != Unavailable {
		t.Errorf("DNSServers = %q, want %q", got, Unavailable)
	}
}

func TestUsername(t *testing.T) {
	// user.Current normally succeeds; only the non-empty contract is checked.
	t.Setenv("USER", "tester")
	if got := newTestCollector(t, "").Username(); got == "" || got == Unknown {
		t.Errorf("Username = %q", got)
	}
}
