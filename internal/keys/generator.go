package keys

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/curve25519"

	"github.com/plexsphere/tunnelctl/internal/command"
)

// Generator produces WireGuard keys as base64 strings.
type Generator interface {
	GeneratePrivate(ctx context.Context) (string, error)
	DerivePublic(ctx context.Context, privateKey string) (string, error)
}

// NewGenerator returns the Generator selected by cfg.
func NewGenerator(cfg Config, runner command.Runner) (Generator, error) {
	cfg.ApplyDefaults()
	switch cfg.Generator {
	case GeneratorExec:
		return NewExecGenerator(runner, cfg.WGPath), nil
	case GeneratorNative:
		return NativeGenerator{}, nil
	default:
		return nil, fmt.Errorf("keys: unknown generator %q", cfg.Generator)
	}
}

// ExecGenerator shells out to "wg genkey" and "wg pubkey".
type ExecGenerator struct {
	runner command.Runner
	wgPath string
}

// NewExecGenerator returns an ExecGenerator using the wg binary at wgPath.
func NewExecGenerator(runner command.Runner, wgPath string) *ExecGenerator {
	return &ExecGenerator{runner: runner, wgPath: wgPath}
}

// GeneratePrivate runs "wg genkey".
func (g *ExecGenerator) GeneratePrivate(ctx context.Context) (string, error) {
	res, err := g.runner.Run(ctx, nil, g.wgPath, "genkey")
	if err != nil {
		return "", fmt.Errorf("keys: genkey: %w", err)
	}
	key := strings.TrimSpace(res.Stdout)
	if key == "" {
		return "", errors.New("keys: genkey: empty output")
	}
	return key, nil
}

// DerivePublic pipes privateKey into "wg pubkey".
func (g *ExecGenerator) DerivePublic(ctx context.Context, privateKey string) (string, error) {
	res, err := g.runner.Run(ctx, strings.NewReader(privateKey), g.wgPath, "pubkey")
	if err != nil {
		return "", fmt.Errorf("keys: pubkey: %w", err)
	}
	key := strings.TrimSpace(res.Stdout)
	if key == "" {
		return "", errors.New("keys: pubkey: empty output")
	}
	return key, nil
}

// NativeGenerator produces Curve25519 keys without external tools.
type NativeGenerator struct{}

// GeneratePrivate returns a clamped random Curve25519 private key.
func (NativeGenerator) GeneratePrivate(_ context.Context) (string, error) {
	privateKey := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(privateKey); err != nil {
		return "", fmt.Errorf("keys: generate private key: %w", err)
	}

	// Clamp per RFC 7748.
	privateKey[0] &^= 0x07
	privateKey[31] &^= 0x80
	privateKey[31] |= 0x40

	return base64.StdEncoding.EncodeToString(privateKey), nil
}

// DerivePublic computes the public key for a base64 private key.
func (NativeGenerator) DerivePublic(_ context.Context, privateKey string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(privateKey))
	if err != nil {
		return "", fmt.Errorf("keys: derive public key: decode: %w", err)
	}
	if len(raw) != curve25519.ScalarSize {
		return "", fmt.Errorf("keys: derive public key: private key must be %d bytes, got %d", curve25519.ScalarSize, len(raw))
	}
	pub, err := curve25519.X25519(raw, curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("keys: derive public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pub), nil
}
