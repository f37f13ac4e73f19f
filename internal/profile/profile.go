// Package profile derives tool-facing identifiers from profile names.
//
// A profile is never stored as an object. Every caller reconstructs the
// interface name and configuration file name from the profile name string,
// so the filesystem stays the single source of truth.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// Prefix is prepended to a profile name to form its interface name.
	Prefix = "wg0-"

	// LegacyInterface is the interface used when no profile name is given.
	LegacyInterface = "wg0"

	// ConfigSuffix is the file extension of tunnel configuration files.
	ConfigSuffix = ".conf"

	// maxInterfaceLen is IFNAMSIZ minus the trailing NUL.
	maxInterfaceLen = 15
)

// ErrInvalidName is returned by Validate for names that cannot be mapped to
// an interface name.
var ErrInvalidName = errors.New("profile: invalid name")

// InterfaceName returns the interface name for the given profile.
// The empty name denotes single-profile legacy mode and maps to "wg0".
func InterfaceName(name string) string {
	if name == "" {
		return LegacyInterface
	}
	return Prefix + name
}

// NameFromInterface recovers the profile name from an interface name.
// It reports false for interfaces that do not follow the naming convention.
func NameFromInterface(iface string) (string, bool) {
	if iface == LegacyInterface {
		return "", true
	}
	name, ok := strings.CutPrefix(iface, Prefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// ConfigFileName returns the configuration file name for the given profile.
func ConfigFileName(name string) string {
	return InterfaceName(name) + ConfigSuffix
}

// NameFromConfigFile recovers a profile name from a directory entry of the
// form "wg0-<name>.conf". The bare legacy file is not a named profile.
func NameFromConfigFile(file string) (string, bool) {
	base, ok := strings.CutSuffix(file, ConfigSuffix)
	if !ok {
		return "", false
	}
	name, ok := strings.CutPrefix(base, Prefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Validate checks that name can be used as a profile name.
// The empty name is valid and selects the legacy interface.
func Validate(name string) error {
	if name == "" {
		return nil
	}
	if len(InterfaceName(name)) > maxInterfaceLen {
		return fmt.Errorf("%w: %q: interface name longer than %d bytes", ErrInvalidName, name, maxInterfaceLen)
	}
	for _, r := range name {
		if r == '/' || r == 0 || unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("%w: %q: contains %q", ErrInvalidName, name, r)
		}
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
