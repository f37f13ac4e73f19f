//go:build !linux

package hostinfo

import "net"

// routeSource asks the kernel to pick a source address by connecting a UDP
// socket. No packet is sent.
func routeSource(dst net.IP) (net.IP, error) {
	conn, err := net.Dial("udp", net.JoinHostPort(dst.String(), "53"))
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP, nil
}
