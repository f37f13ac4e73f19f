//go:build linux

package hostinfo

import (
	"errors"
	"net"

	"github.com/vishvananda/netlink"
)

func routeSource(dst net.IP) (net.IP, error) {
	routes, err := netlink.RouteGet(dst)
	if err != nil {
		return nil, err
	}
	for _, r := range routes {
		if r.Src != nil {
			return r.Src, nil
		}
	}
	return nil, errors.New("hostinfo: route has no preferred source")
}
