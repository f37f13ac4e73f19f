// Package store persists and retrieves tunnel profile configuration text.
//
// Reads try the privileged directory first and fall back to the staging
// mirror. Writes always land in the staging mirror and are then copied into
// the privileged directory through the elevation helper; a failed elevated
// copy degrades to a partial success rather than an error so the user's
// draft is never lost.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/plexsphere/tunnelctl/internal/command"
	"github.com/plexsphere/tunnelctl/internal/fsutil"
	"github.com/plexsphere/tunnelctl/internal/profile"
	"github.com/plexsphere/tunnelctl/internal/wgconf"
)

// Paths lists the files associated with one profile.
type Paths struct {
	Privileged string
	Staging    string
	Temp       string
}

// Store reads and writes profile configurations.
type Store struct {
	cfg    Config
	elev   command.Elevator
	logger *slog.Logger
}

// New creates a Store. Config defaults are applied automatically.
func New(cfg Config, elev command.Elevator, logger *slog.Logger) *Store {
	cfg.ApplyDefaults()
	return &Store{
		cfg:    cfg,
		elev:   elev,
		logger: logger.With("component", "store"),
	}
}

// Paths returns the privileged, staging and temporary paths for name.
// The temporary path is fixed per profile, so concurrent writes for the same
// profile are not safe.
func (s *Store) Paths(name string) Paths {
	iface := profile.InterfaceName(name)
	return Paths{
		Privileged: filepath.Join(s.cfg.ConfigDir, iface+profile.ConfigSuffix),
		Staging:    filepath.Join(s.cfg.StagingDir, iface+profile.ConfigSuffix),
		Temp:       filepath.Join(s.cfg.StagingDir, iface+"-temp"+profile.ConfigSuffix),
	}
}

// Read returns the configuration text for name. Missing or unreadable files
// in both locations yield an empty string: no configuration yet is not an
// error.
func (s *Store) Read(name string) (string, error) {
	if err := profile.Validate(name); err != nil {
		return "", fmt.Errorf("store: read: %w", err)
	}
	p := s.Paths(name)

	data, err := os.ReadFile(p.Privileged)
	if err == nil {
		return string(data), nil
	}
	s.logger.Debug("privileged config not readable",
		"profile", name,
		"path", p.Privileged,
		"error", err,
	)

	if data, err := os.ReadFile(p.Staging); err == nil {
		return string(data), nil
	}

	return "", nil
}

// Write normalizes content and persists it. The returned Outcome reports
// whether the privileged copy succeeded; an error is returned only when the
// temporary file for the elevated copy could not be written.
func (s *Store) Write(ctx context.Context, name, content string) (Outcome, error) {
	if err := profile.Validate(name); err != nil {
		return Outcome{}, fmt.Errorf("store: write: %w", err)
	}
	p := s.Paths(name)
	data := []byte(wgconf.NormalizeDNS(content))

	// The staging copy is best effort.
	if err := fsutil.WriteFileAtomic(p.Staging, data, 0600); err != nil {
		s.logger.Warn("staging write failed",
			"profile", name,
			"path", p.Staging,
			"error", err,
		)
	}

	if err := os.WriteFile(p.Temp, data, 0600); err != nil {
		_ = fsutil.RemoveIfExists(p.Temp)
		return Outcome{}, fmt.Errorf("store: write: temporary file: %w", err)
	}
	defer func() {
		if err := fsutil.RemoveIfExists(p.Temp); err != nil {
			s.logger.Warn("temporary file cleanup failed",
				"path", p.Temp,
				"error", err,
			)
		}
	}()

	_, err := s.elev.RunPrivileged(ctx, "cp", p.Temp, p.Privileged)
	if err == nil {
		s.logger.Info("configuration saved",
			"profile", name,
			"path", p.Privileged,
		)
		return Outcome{Kind: FullSuccess, Path: p.Privileged, Target: p.Privileged}, nil
	}

	out := Outcome{
		Kind:   PartialSuccess,
		Path:   p.Staging,
		Target: p.Privileged,
		Reason: ReasonHelperFailed,
	}
	var exitErr *command.ExitError
	switch {
	case errors.Is(err, command.ErrHelperUnavailable):
		out.Reason = ReasonHelperUnavailable
		out.Detail = err.Error()
	case errors.As(err, &exitErr):
		out.Detail = strings.TrimSpace(exitErr.Stderr)
	default:
		out.Detail = err.Error()
	}

	s.logger.Warn("privileged write failed, configuration kept in staging",
		"profile", name,
		"staging", p.Staging,
		"reason", out.Reason.String(),
		"error", err,
	)
	return out, nil
}

// CheckComplete reports whether the stored configuration for name has real
// key material and an endpoint.
func (s *Store) CheckComplete(name string) (bool, error) {
	text, err := s.Read(name)
	if err != nil {
		return false, fmt.Errorf("store: check complete: %w", err)
	}
	return wgconf.Complete(text), nil
}

// Delete removes the privileged configuration through the elevation helper
// and then the staging mirror. The mirror is kept if the privileged removal
// fails.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := profile.Validate(name); err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	p := s.Paths(name)

	if _, err := s.elev.RunPrivileged(ctx, "rm", "-f", p.Privileged); err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if err := fsutil.RemoveIfExists(p.Staging); err != nil {
		return fmt.Errorf("store: delete: staging copy: %w", err)
	}

	s.logger.Info("configuration deleted",
		"profile", name,
		"path", p.Privileged,
	)
	return nil
}
