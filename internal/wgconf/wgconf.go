// Package wgconf inspects and produces WireGuard configuration text.
//
// The text is treated as an opaque "Key = value" block. Only the handful of
// fields needed for completeness checks and first-time setup are read; the
// rest of the file passes through untouched.
package wgconf

import (
	"bufio"
	"strings"
)

// Placeholder values left in a configuration that was never filled in.
const (
	PlaceholderPublicKey = "SERVIDOR_PUBLIC_KEY_AQUI"
	PlaceholderEndpoint  = "x.x.x.x:51820"

	TemplateServerKey  = "CLAVE_PUBLICA_DEL_SERVIDOR"
	TemplateEndpoint   = "IP_SERVIDOR:PUERTO"
	TemplatePrivateKey = "CLAVE_PRIVADA_GENERADA"
)

var placeholders = map[string]bool{
	PlaceholderPublicKey: true,
	PlaceholderEndpoint:  true,
	TemplateServerKey:    true,
	TemplateEndpoint:     true,
	TemplatePrivateKey:   true,
}

// Fields holds the values this package cares about.
// The first occurrence of each key wins.
type Fields struct {
	PrivateKey          string
	Address             string
	DNS                 string
	PublicKey           string
	Endpoint            string
	AllowedIPs          string
	PersistentKeepalive string
}

// assignment is one "Key = value" line with the section it appears in.
type assignment struct {
	section string
	key     string
	value   string
}

// scan returns every assignment in text in order. Comment lines, trailing
// "#" comments and malformed lines are dropped.
func scan(text string) []assignment {
	var out []assignment
	section := ""

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(strings.Trim(line, "[]")))
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value, _, _ = strings.Cut(value, "#")
		out = append(out, assignment{
			section: section,
			key:     strings.TrimSpace(key),
			value:   strings.TrimSpace(value),
		})
	}
	return out
}

// is reports whether a assigns key in the peer role (peer) or the interface
// role. Configs without section headers carry both.
func (a assignment) is(key string, peer bool) bool {
	if !strings.EqualFold(a.key, key) {
		return false
	}
	if peer {
		return a.section == "peer" || a.section == ""
	}
	return a.section != "peer"
}

// Parse scans text for "Key = value" assignments. Section headers are
// tracked so that interface keys are not confused with peer keys; comments
// and malformed lines are skipped. The first occurrence of each key wins.
func Parse(text string) Fields {
	var f Fields
	for _, a := range scan(text) {
		setFirst(&f.PrivateKey, a, "PrivateKey", false)
		setFirst(&f.Address, a, "Address", false)
		setFirst(&f.DNS, a, "DNS", false)
		setFirst(&f.PublicKey, a, "PublicKey", true)
		setFirst(&f.Endpoint, a, "Endpoint", true)
		if a.section == "peer" {
			setFirst(&f.AllowedIPs, a, "AllowedIPs", true)
			setFirst(&f.PersistentKeepalive, a, "PersistentKeepalive", true)
		}
	}
	return f
}

func setFirst(dst *string, a assignment, key string, peer bool) {
	if *dst == "" && a.is(key, peer) {
		*dst = a.value
	}
}

// NormalizeDNS comments out every active "DNS =" assignment.
// Lines that are already commented are left unchanged.
func NormalizeDNS(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		key, _, ok := strings.Cut(trimmed, "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "DNS") {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		lines[i] = indent + "#" + trimmed
	}
	return strings.Join(lines, "\n")
}

// Complete reports whether text carries a private key, a peer public key
// and an endpoint, none of them a template placeholder. Any filled-in
// occurrence counts, so one configured peer among several suffices. It is a
// syntactic check only: the keys are not decoded and the endpoint is not
// resolved.
func Complete(text string) bool {
	var priv, pub, endpoint bool
	for _, a := range scan(text) {
		if !filled(a.value) {
			continue
		}
		priv = priv || a.is("PrivateKey", false)
		pub = pub || a.is("PublicKey", true)
		endpoint = endpoint || a.is("Endpoint", true)
	}
	return priv && pub && endpoint
}

// filled reports whether v is non-empty and mentions no placeholder.
func filled(v string) bool {
	if v == "" {
		return false
	}
	for p := range placeholders {
		if strings.Contains(v, p) {
			return false
		}
	}
	return true
}
