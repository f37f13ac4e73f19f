package wireguard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/plexsphere/tunnelctl/internal/command"
)

// ExecAddressQuerier queries addresses with "ip addr show dev <iface>".
type ExecAddressQuerier struct {
	runner command.Runner
	ipPath string
}

// NewExecAddressQuerier returns an ExecAddressQuerier using the ip binary at ipPath.
func NewExecAddressQuerier(runner command.Runner, ipPath string) *ExecAddressQuerier {
	return &ExecAddressQuerier{runner: runner, ipPath: ipPath}
}

// GlobalAddresses implements AddressQuerier. A non-zero exit (typically an
// unknown device) is reported as no addresses.
func (p *ExecAddressQuerier) GlobalAddresses(ctx context.Context, iface string) ([]string, error) {
	res, err := p.runner.Run(ctx, nil, p.ipPath, "addr", "show", "dev", iface)
	if err != nil {
		var exitErr *command.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("wireguard: ip addr show: %w", err)
	}
	return ParseGlobalAddresses(res.Stdout), nil
}

// ExecStateReporter queries WireGuard state with "wg show".
type ExecStateReporter struct {
	run    func(ctx context.Context, name string, args ...string) (command.Result, error)
	wgPath string
}

// NewExecStateReporter returns an ExecStateReporter. When cfg.ElevateQueries
// is set, queries go through elev; otherwise runner is used directly.
func NewExecStateReporter(cfg Config, runner command.Runner, elev command.Elevator) *ExecStateReporter {
	cfg.ApplyDefaults()
	r := &ExecStateReporter{wgPath: cfg.WGPath}
	if cfg.ElevateQueries {
		r.run = elev.RunPrivileged
	} else {
		r.run = func(ctx context.Context, name string, args ...string) (command.Result, error) {
			return runner.Run(ctx, nil, name, args...)
		}
	}
	return r
}

// InterfaceUp implements StateReporter. The interface is up when
// "wg show <iface>" succeeds with non-empty output.
func (r *ExecStateReporter) InterfaceUp(ctx context.Context, iface string) (bool, error) {
	res, err := r.run(ctx, r.wgPath, "show", iface)
	if err != nil {
		var exitErr *command.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("wireguard: wg show %s: %w", iface, err)
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}

// ActiveInterfaces implements StateReporter using "wg show".
func (r *ExecStateReporter) ActiveInterfaces(ctx context.Context) ([]string, error) {
	res, err := r.run(ctx, r.wgPath, "show")
	if err != nil {
		return nil, fmt.Errorf("wireguard: wg show: %w", err)
	}
	return ParseActiveInterfaces(res.Stdout), nil
}
