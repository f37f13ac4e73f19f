package wireguard

import (
	"fmt"
	"log/slog"

	"github.com/plexsphere/tunnelctl/internal/command"
)

// NewBackend returns the AddressQuerier and StateReporter selected by
// cfg.Backend. Config defaults are applied automatically.
func NewBackend(cfg Config, runner command.Runner, elev command.Elevator, logger *slog.Logger) (AddressQuerier, StateReporter, error) {
	cfg.ApplyDefaults()
	switch cfg.Backend {
	case BackendExec:
		return NewExecAddressQuerier(runner, cfg.IPPath), NewExecStateReporter(cfg, runner, elev), nil
	case BackendNative:
		return newNativeBackend(logger)
	default:
		return nil, nil, fmt.Errorf("wireguard: unknown backend %q", cfg.Backend)
	}
}
