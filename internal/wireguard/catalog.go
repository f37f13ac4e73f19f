package wireguard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/plexsphere/tunnelctl/internal/command"
	"github.com/plexsphere/tunnelctl/internal/profile"
)

// Catalog enumerates the profiles present in the privileged configuration
// directory.
type Catalog struct {
	elev   command.Elevator
	dir    string
	cfg    Config
	logger *slog.Logger
}

// NewCatalog creates a Catalog scanning dir. Config defaults are applied automatically.
func NewCatalog(elev command.Elevator, dir string, cfg Config, logger *slog.Logger) *Catalog {
	cfg.ApplyDefaults()
	return &Catalog{
		elev:   elev,
		dir:    dir,
		cfg:    cfg,
		logger: logger.With("component", "wireguard"),
	}
}

// ListAvailable returns the names of all profiles in ascending byte order.
// Files not following the "wg0-<name>.conf" pattern are ignored. A listing
// failure is an error, never an empty result.
func (c *Catalog) ListAvailable(ctx context.Context) ([]string, error) {
	res, err := c.elev.RunPrivileged(ctx, c.cfg.LsPath, "-1", c.dir)
	if err != nil {
		return nil, fmt.Errorf("wireguard: list profiles: %w", err)
	}

	names := []string{}
	for _, entry := range ParseDirListing(res.Stdout) {
		if name, ok := profile.NameFromConfigFile(entry); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	c.logger.Debug("profiles listed",
		"dir", c.dir,
		"count", len(names),
	)
	return names, nil
}
