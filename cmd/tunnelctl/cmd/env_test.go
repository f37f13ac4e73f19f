package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plexsphere/tunnelctl/internal/wgconf"
)

const fakeWG = `#!/bin/sh
case "$1" in
genkey) echo "key-$$" ;;
pubkey) k=$(cat); echo "pub-$k" ;;
show)
	if [ -z "$2" ]; then
		printf 'interface: wg0-beta\n  listening port: 51820\n'
		exit 0
	fi
	if [ "$2" = wg0-beta ]; then
		echo "interface: wg0-beta"
		exit 0
	fi
	echo "Unable to access interface: No such device" >&2
	exit 1 ;;
esac
`

const fakeWGQuick = `#!/bin/sh
if [ "$2" = wg0-broken ]; then
	echo "wg-quick: '$2' is not a WireGuard interface" >&2
	exit 1
fi
echo "[#] wg-quick $1 $2"
`

const fakeIP = `#!/bin/sh
if [ "$4" = wg0-beta ]; then
	printf '5: wg0-beta: <POINTOPOINT,UP> mtu 1420\n    inet 10.0.0.2/24 scope global wg0-beta\n'
	exit 0
fi
echo "Device \"$4\" does not exist." >&2
exit 1
`

// testEnv is a sandboxed configuration with fake wg, wg-quick and ip
// binaries. Elevation is disabled so every command runs directly.
type testEnv struct {
	dir     string
	etc     string
	staging string
	keys    string
	bin     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		etc:     filepath.Join(dir, "etc"),
		staging: filepath.Join(dir, "staging"),
		keys:    filepath.Join(dir, "home", ".wireguard"),
		bin:     filepath.Join(dir, "bin"),
	}
	for _, d := range []string{env.etc, env.staging, env.bin} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	for name, script := range map[string]string{"wg": fakeWG, "wg-quick": fakeWGQuick, "ip": fakeIP} {
		if err := os.WriteFile(filepath.Join(env.bin, name), []byte(script), 0755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("HOME", filepath.Join(dir, "home"))

	cfgFile = env.writeConfig(t, env.etc)
	return env
}

// writeConfig writes a config file using configDir as the privileged
// directory and returns its path.
func (e *testEnv) writeConfig(t *testing.T, configDir string) string {
	t.Helper()
	resolv := filepath.Join(e.dir, "resolv.conf")
	if err := os.WriteFile(resolv, []byte("nameserver 9.9.9.9\n"), 0644); err != nil {
		t.Fatal(err)
	}
	yaml := fmt.Sprintf(`log_level: error
elevation:
  helper: none
store:
  config_dir: %s
  staging_dir: %s
keys:
  cache_dir: %s
  wg_path: %s
wireguard:
  wg_path: %s
  wg_quick_path: %s
  ip_path: %s
hostinfo:
  resolv_conf: %s
  wg_path: %s
`, configDir, e.staging, e.keys,
		filepath.Join(e.bin, "wg"),
		filepath.Join(e.bin, "wg"),
		filepath.Join(e.bin, "wg-quick"),
		filepath.Join(e.bin, "ip"),
		resolv,
		filepath.Join(e.bin, "wg"))

	path := filepath.Join(e.dir, "config-"+filepath.Base(configDir)+".yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// exec runs tunnelctl with args and returns its stdout.
func (e *testEnv) exec(args ...string) (string, error) {
	return e.execStdin("", args...)
}

func (e *testEnv) execStdin(stdin string, args ...string) (string, error) {
	resetFlags()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func (e *testEnv) writeProfile(t *testing.T, file, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.etc, file), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// resetFlags restores flag variables that persist on the shared rootCmd.
func resetFlags() {
	logLevel = ""
	configWriteFile = ""
	initEndpoint = ""
	initServerKey = ""
	initAddress = wgconf.DefaultAddress
	initDNS = wgconf.DefaultDNS
	initAllowedIPs = wgconf.DefaultAllowedIPs
	initKeepalive = wgconf.DefaultPersistentKeepalive
	initForce = false
	keysRegenerate = false
}
