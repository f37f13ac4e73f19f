package wireguard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plexsphere/tunnelctl/internal/command"
	"github.com/plexsphere/tunnelctl/internal/profile"
)

// Controller brings profile interfaces up and down with wg-quick.
// It performs no pre-checks; repeated calls behave as wg-quick does.
type Controller struct {
	elev   command.Elevator
	cfg    Config
	logger *slog.Logger
}

// NewController creates a new Controller. Config defaults are applied automatically.
func NewController(elev command.Elevator, cfg Config, logger *slog.Logger) *Controller {
	cfg.ApplyDefaults()
	return &Controller{
		elev:   elev,
		cfg:    cfg,
		logger: logger.With("component", "wireguard"),
	}
}

// Connect runs "wg-quick up" for the profile and returns its stdout.
// A non-zero exit yields an error wrapping *command.ExitError.
func (c *Controller) Connect(ctx context.Context, name string) (string, error) {
	return c.quick(ctx, "up", name)
}

// Disconnect runs "wg-quick down" for the profile and returns its stdout.
func (c *Controller) Disconnect(ctx context.Context, name string) (string, error) {
	return c.quick(ctx, "down", name)
}

func (c *Controller) quick(ctx context.Context, verb, name string) (string, error) {
	if err := profile.Validate(name); err != nil {
		return "", fmt.Errorf("wireguard: %s: %w", verb, err)
	}
	iface := profile.InterfaceName(name)

	res, err := c.elev.RunPrivileged(ctx, c.cfg.WGQuickPath, verb, iface)
	if err != nil {
		return "", fmt.Errorf("wireguard: %s %s: %w", verb, iface, err)
	}

	c.logger.Info("tunnel "+verb,
		"interface", iface,
	)
	return res.Stdout, nil
}
