// Package keys provisions the host's WireGuard keypair.
//
// The keypair is generated once per host and cached under the user's home
// directory. A readable cache is authoritative and is never invalidated
// automatically.
package keys

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/plexsphere/tunnelctl/internal/fsutil"
)

// Keypair holds base64-encoded WireGuard keys.
type Keypair struct {
	PrivateKey string // never logged
	PublicKey  string
}

// Provisioner returns the cached keypair or creates one.
type Provisioner struct {
	cfg    Config
	gen    Generator
	logger *slog.Logger
}

// NewProvisioner creates a Provisioner. Config defaults are applied automatically.
func NewProvisioner(cfg Config, gen Generator, logger *slog.Logger) *Provisioner {
	cfg.ApplyDefaults()
	return &Provisioner{
		cfg:    cfg,
		gen:    gen,
		logger: logger.With("component", "keys"),
	}
}

// Provision returns the cached keypair when both cache files are readable.
// Otherwise it generates a new pair and caches it on a best-effort basis:
// the returned pair is valid even if caching fails.
func (p *Provisioner) Provision(ctx context.Context) (Keypair, error) {
	if kp, ok := p.loadCache(); ok {
		p.logger.Debug("using cached keypair", "dir", p.cfg.CacheDir)
		return kp, nil
	}
	return p.Regenerate(ctx)
}

// Regenerate always produces a fresh keypair and overwrites the cache.
func (p *Provisioner) Regenerate(ctx context.Context) (Keypair, error) {
	priv, err := p.gen.GeneratePrivate(ctx)
	if err != nil {
		return Keypair{}, fmt.Errorf("keys: provision: %w", err)
	}
	pub, err := p.gen.DerivePublic(ctx, priv)
	if err != nil {
		return Keypair{}, fmt.Errorf("keys: provision: %w", err)
	}

	kp := Keypair{PrivateKey: priv, PublicKey: pub}
	p.storeCache(kp)

	p.logger.Info("keypair generated",
		"dir", p.cfg.CacheDir,
		"public_key", pub,
	)
	return kp, nil
}

// DerivePublic returns the public key matching privateKey.
func (p *Provisioner) DerivePublic(ctx context.Context, privateKey string) (string, error) {
	pub, err := p.gen.DerivePublic(ctx, strings.TrimSpace(privateKey))
	if err != nil {
		return "", fmt.Errorf("keys: derive: %w", err)
	}
	return pub, nil
}

// CacheDir returns the directory holding the cached keypair.
func (p *Provisioner) CacheDir() string {
	return p.cfg.CacheDir
}

func (p *Provisioner) loadCache() (Keypair, bool) {
	priv, err := os.ReadFile(filepath.Join(p.cfg.CacheDir, PrivateKeyFile))
	if err != nil {
		return Keypair{}, false
	}
	pub, err := os.ReadFile(filepath.Join(p.cfg.CacheDir, PublicKeyFile))
	if err != nil {
		return Keypair{}, false
	}
	return Keypair{
		PrivateKey: strings.TrimSpace(string(priv)),
		PublicKey:  strings.TrimSpace(string(pub)),
	}, true
}

func (p *Provisioner) storeCache(kp Keypair) {
	if err := os.MkdirAll(p.cfg.CacheDir, 0700); err != nil {
		p.logger.Warn("key cache directory not created",
			"dir", p.cfg.CacheDir,
			"error", err,
		)
		return
	}
	files := []struct {
		name string
		data string
	}{
		{PrivateKeyFile, kp.PrivateKey},
		{PublicKeyFile, kp.PublicKey},
	}
	for _, f := range files {
		path := filepath.Join(p.cfg.CacheDir, f.name)
		if err := fsutil.WriteFileAtomic(path, []byte(f.data), 0600); err != nil {
			p.logger.Warn("key cache write failed",
				"path", path,
				"error", err,
			)
		}
	}
}
