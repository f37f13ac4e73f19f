package wgconf

import (
	"bytes"
	"text/template"
)

// Template holds the values for a first-time profile configuration.
type Template struct {
	PrivateKey          string
	Address             string
	DNS                 string
	ServerPublicKey     string
	Endpoint            string
	AllowedIPs          string
	PersistentKeepalive string
}

// Template defaults.
const (
	DefaultAddress             = "10.0.0.2/24"
	DefaultDNS                 = "1.1.1.1"
	DefaultAllowedIPs          = "0.0.0.0/0"
	DefaultPersistentKeepalive = "25"
)

// ApplyDefaults fills empty fields with defaults or placeholders.
func (t *Template) ApplyDefaults() {
	if t.PrivateKey == "" {
		t.PrivateKey = TemplatePrivateKey
	}
	if t.Address == "" {
		t.Address = DefaultAddress
	}
	if t.DNS == "" {
		t.DNS = DefaultDNS
	}
	if t.ServerPublicKey == "" {
		t.ServerPublicKey = TemplateServerKey
	}
	if t.Endpoint == "" {
		t.Endpoint = TemplateEndpoint
	}
	if t.AllowedIPs == "" {
		t.AllowedIPs = DefaultAllowedIPs
	}
	if t.PersistentKeepalive == "" {
		t.PersistentKeepalive = DefaultPersistentKeepalive
	}
}

var configTmpl = template.Must(template.New("wg-config").Parse(`[Interface]
PrivateKey = {{.PrivateKey}}
Address = {{.Address}}
DNS = {{.DNS}}

[Peer]
PublicKey = {{.ServerPublicKey}}
Endpoint = {{.Endpoint}}
AllowedIPs = {{.AllowedIPs}}
PersistentKeepalive = {{.PersistentKeepalive}}
`))

// Render produces configuration text for t. Defaults are applied to a copy.
func Render(t Template) string {
	t.ApplyDefaults()
	var buf bytes.Buffer
	// Execute only fails on writer errors, which bytes.Buffer never returns.
	_ = configTmpl.Execute(&buf, t)
	return buf.String()
}
