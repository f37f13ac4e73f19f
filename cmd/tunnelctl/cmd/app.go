package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/plexsphere/tunnelctl/internal/command"
	"github.com/plexsphere/tunnelctl/internal/config"
	"github.com/plexsphere/tunnelctl/internal/hostinfo"
	"github.com/plexsphere/tunnelctl/internal/keys"
	"github.com/plexsphere/tunnelctl/internal/store"
	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// app wires the components for a single command invocation.
type app struct {
	cfg    *config.AppConfig
	logger *slog.Logger

	store     *store.Store
	keys      *keys.Provisioner
	ctrl      *wireguard.Controller
	inspector *wireguard.Inspector
	catalog   *wireguard.Catalog
	host      *hostinfo.Collector
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger := setupLogger(cmd.ErrOrStderr(), level)

	runner := command.NewExecRunner(logger)
	elev := command.NewElevator(cfg.Elevation, runner, command.NewRootChecker(), logger)

	gen, err := keys.NewGenerator(cfg.Keys, runner)
	if err != nil {
		return nil, err
	}
	querier, reporter, err := wireguard.NewBackend(cfg.WireGuard, runner, elev, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store.New(cfg.Store, elev, logger),
		keys:      keys.NewProvisioner(cfg.Keys, gen, logger),
		ctrl:      wireguard.NewController(elev, cfg.WireGuard, logger),
		inspector: wireguard.NewInspector(querier, reporter, logger),
		catalog:   wireguard.NewCatalog(elev, cfg.Store.ConfigDir, cfg.WireGuard, logger),
		host:      hostinfo.New(cfg.HostInfo, logger),
	}, nil
}

// setupLogger creates a slog.Logger with the given level.
func setupLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// profileArg returns the optional profile name argument; none selects the
// legacy interface.
func profileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
