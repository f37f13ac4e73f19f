package wireguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/plexsphere/tunnelctl/internal/profile"
)

// ErrNoAddress is returned by Address when the interface has no global address.
var ErrNoAddress = errors.New("wireguard: no address assigned")

// AddressQuerier queries the addresses assigned to a network interface.
type AddressQuerier interface {
	// GlobalAddresses returns the globally scoped addresses of iface.
	// A missing interface yields no addresses and a nil error; an error means
	// the query itself could not be performed.
	GlobalAddresses(ctx context.Context, iface string) ([]string, error)
}

// StateReporter queries the tunnel tool's view of WireGuard interfaces.
type StateReporter interface {
	// InterfaceUp reports whether iface is a configured WireGuard interface.
	// An error means the query itself could not be performed.
	InterfaceUp(ctx context.Context, iface string) (bool, error)

	// ActiveInterfaces lists the WireGuard interfaces in report order.
	ActiveInterfaces(ctx context.Context) ([]string, error)
}

// Inspector derives connection status from live system state on every call.
type Inspector struct {
	querier  AddressQuerier
	reporter StateReporter
	logger   *slog.Logger
}

// NewInspector creates an Inspector.
func NewInspector(querier AddressQuerier, reporter StateReporter, logger *slog.Logger) *Inspector {
	return &Inspector{
		querier:  querier,
		reporter: reporter,
		logger:   logger.With("component", "wireguard"),
	}
}

// IsActive reports whether the profile's interface is up. The address query
// is tried first; the state report is consulted only when the address query
// cannot run. If neither can run the profile is reported inactive.
func (i *Inspector) IsActive(ctx context.Context, name string) bool {
	if profile.Validate(name) != nil {
		return false
	}
	iface := profile.InterfaceName(name)

	addrs, err := i.querier.GlobalAddresses(ctx, iface)
	if err == nil {
		return len(addrs) > 0
	}
	i.logger.Debug("address query failed, falling back to state report",
		"interface", iface,
		"error", err,
	)

	up, err := i.reporter.InterfaceUp(ctx, iface)
	if err != nil {
		i.logger.Debug("state report failed",
			"interface", iface,
			"error", err,
		)
		return false
	}
	return up
}

// FindActive returns the profile name of the first active interface carrying
// the profile prefix, in report order. Only the first match is returned when
// several profiles are up. ok is false when none is active.
func (i *Inspector) FindActive(ctx context.Context) (name string, ok bool, err error) {
	ifaces, err := i.reporter.ActiveInterfaces(ctx)
	if err != nil {
		return "", false, fmt.Errorf("wireguard: find active: %w", err)
	}
	for _, iface := range ifaces {
		if n, ok := strings.CutPrefix(iface, profile.Prefix); ok && n != "" {
			return n, true, nil
		}
	}
	return "", false, nil
}

// Address returns the first global address assigned to the profile's interface.
func (i *Inspector) Address(ctx context.Context, name string) (string, error) {
	if err := profile.Validate(name); err != nil {
		return "", fmt.Errorf("wireguard: address: %w", err)
	}
	iface := profile.InterfaceName(name)

	addrs, err := i.querier.GlobalAddresses(ctx, iface)
	if err != nil {
		return "", fmt.Errorf("wireguard: address %s: %w", iface, err)
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoAddress, iface)
	}
	return addrs[0], nil
}
