package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"
)

// Supported elevation helpers.
const (
	HelperPkexec = "pkexec"
	HelperSudo   = "sudo"
	HelperNone   = "none"
)

// Config holds the configuration for privilege escalation.
type Config struct {
	// Helper selects the elevation mechanism: "pkexec", "sudo" or "none".
	// Default: "pkexec"
	Helper string `yaml:"helper"`

	// Path overrides the helper binary location.
	// Default: the helper name, resolved through PATH.
	Path string `yaml:"path"`
}

// DefaultHelper is the default elevation mechanism.
const DefaultHelper = HelperPkexec

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Helper == "" {
		c.Helper = DefaultHelper
	}
	if c.Path == "" && c.Helper != HelperNone {
		c.Path = c.Helper
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	switch c.Helper {
	case HelperPkexec, HelperSudo, HelperNone:
		return nil
	default:
		return fmt.Errorf("command: config: unknown elevation helper %q", c.Helper)
	}
}

// Elevator runs commands with elevated privileges.
type Elevator interface {
	RunPrivileged(ctx context.Context, name string, args ...string) (Result, error)
}

// RootChecker abstracts privilege checking for testability.
type RootChecker interface {
	IsRoot() bool
}

type euidChecker struct{}

func (euidChecker) IsRoot() bool { return unix.Geteuid() == 0 }

// NewRootChecker returns a RootChecker that inspects the effective UID.
func NewRootChecker() RootChecker {
	return euidChecker{}
}

// HelperElevator prefixes every command with the configured helper.
type HelperElevator struct {
	cfg    Config
	runner Runner
	root   RootChecker
	logger *slog.Logger
}

// NewElevator returns an Elevator for cfg. Config defaults are applied automatically.
func NewElevator(cfg Config, runner Runner, root RootChecker, logger *slog.Logger) *HelperElevator {
	cfg.ApplyDefaults()
	return &HelperElevator{
		cfg:    cfg,
		runner: runner,
		root:   root,
		logger: logger.With("component", "command"),
	}
}

// RunPrivileged runs name with args through the elevation helper.
// When the process already runs as root, or the helper is "none", the
// command is executed directly. A helper that cannot be started yields an
// error matching ErrHelperUnavailable.
func (e *HelperElevator) RunPrivileged(ctx context.Context, name string, args ...string) (Result, error) {
	if e.cfg.Helper == HelperNone || e.root.IsRoot() {
		return e.runner.Run(ctx, nil, name, args...)
	}

	var argv []string
	switch e.cfg.Helper {
	case HelperSudo:
		argv = append([]string{"-n", name}, args...)
	default:
		argv = append([]string{name}, args...)
	}

	res, err := e.runner.Run(ctx, nil, e.cfg.Path, argv...)
	if err != nil && errors.Is(err, ErrHelperUnavailable) {
		e.logger.Warn("elevation helper unavailable",
			"helper", e.cfg.Helper,
			"error", err,
		)
	}
	return res, err
}
