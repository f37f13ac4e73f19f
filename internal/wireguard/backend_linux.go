//go:build linux

package wireguard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
	"golang.zx2c4.com/wireguard/wgctrl"
)

// NetlinkAddressQuerier reads interface addresses over rtnetlink.
type NetlinkAddressQuerier struct {
	logger *slog.Logger
}

// NewNetlinkAddressQuerier returns a new NetlinkAddressQuerier.
func NewNetlinkAddressQuerier(logger *slog.Logger) *NetlinkAddressQuerier {
	return &NetlinkAddressQuerier{logger: logger.With("component", "wireguard")}
}

// GlobalAddresses implements AddressQuerier.
func (p *NetlinkAddressQuerier) GlobalAddresses(_ context.Context, iface string) ([]string, error) {
	link, err := netlink.LinkByName(iface)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("wireguard: link %s: %w", iface, err)
	}

	addrs, err := netlink.AddrList(link, netlink.FAMILY_ALL)
	if err != nil {
		return nil, fmt.Errorf("wireguard: addr list %s: %w", iface, err)
	}

	var out []string
	for _, a := range addrs {
		if a.Scope != unix.RT_SCOPE_UNIVERSE {
			continue
		}
		out = append(out, a.IP.String())
	}

	p.logger.Debug("addresses queried",
		"interface", iface,
		"count", len(out),
	)
	return out, nil
}

// WgctrlStateReporter queries WireGuard devices through wgctrl. A new client
// is opened per call so that no socket outlives the query.
type WgctrlStateReporter struct{}

// InterfaceUp implements StateReporter.
func (WgctrlStateReporter) InterfaceUp(_ context.Context, iface string) (bool, error) {
	client, err := wgctrl.New()
	if err != nil {
		return false, fmt.Errorf("wireguard: open wgctrl: %w", err)
	}
	defer client.Close()

	if _, err := client.Device(iface); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("wireguard: device %s: %w", iface, err)
	}
	return true, nil
}

// ActiveInterfaces implements StateReporter.
func (WgctrlStateReporter) ActiveInterfaces(_ context.Context) ([]string, error) {
	client, err := wgctrl.New()
	if err != nil {
		return nil, fmt.Errorf("wireguard: open wgctrl: %w", err)
	}
	defer client.Close()

	devices, err := client.Devices()
	if err != nil {
		return nil, fmt.Errorf("wireguard: devices: %w", err)
	}
	names := make([]string, 0, len(devices))
	for _, d := range devices {
		names = append(names, d.Name)
	}
	return names, nil
}

func newNativeBackend(logger *slog.Logger) (AddressQuerier, StateReporter, error) {
	return NewNetlinkAddressQuerier(logger), WgctrlStateReporter{}, nil
}
