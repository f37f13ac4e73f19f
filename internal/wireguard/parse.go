package wireguard

import "strings"

// Text parsers for ip(8), wg(8) and ls(1) output. Each function handles
// exactly one line shape.

const activeInterfacePrefix = "interface: "

// ParseActiveInterfaces returns the interface names announced by "wg show"
// lines of the form "interface: <name>", in output order.
func ParseActiveInterfaces(out string) []string {
	var ifaces []string
	for _, line := range strings.Split(out, "\n") {
		rest, ok := strings.CutPrefix(line, activeInterfacePrefix)
		if !ok {
			continue
		}
		if name := strings.TrimSpace(rest); name != "" {
			ifaces = append(ifaces, name)
		}
	}
	return ifaces
}

// ParseGlobalAddresses returns the addresses of "ip addr show" lines of the
// form "inet[6] <addr>/<len> ... scope global ...", prefix length stripped.
func ParseGlobalAddresses(out string) []string {
	var addrs []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || (fields[0] != "inet" && fields[0] != "inet6") {
			continue
		}
		if !strings.Contains(line, "scope global") {
			continue
		}
		addr, _, _ := strings.Cut(fields[1], "/")
		addrs = append(addrs, addr)
	}
	return addrs
}

// HasGlobalAddress reports whether "ip addr show" output contains at least
// one globally scoped address.
func HasGlobalAddress(out string) bool {
	return len(ParseGlobalAddresses(out)) > 0
}

// ParseDirListing returns one entry per non-empty line of "ls -1" output.
func ParseDirListing(out string) []string {
	var entries []string
	for _, line := range strings.Split(out, "\n") {
		if entry := strings.TrimSpace(line); entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
