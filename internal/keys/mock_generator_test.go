package keys

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/plexsphere/tunnelctl/internal/command"
)

// mockGenerator is a test double for Generator that counts invocations.
type mockGenerator struct {
	mu sync.Mutex

	genCalls    int
	deriveCalls int

	genErr    error
	deriveErr error
}

func (m *mockGenerator) GeneratePrivate(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.genCalls++
	if m.genErr != nil {
		return "", m.genErr
	}
	return fmt.Sprintf("private-%d", m.genCalls), nil
}

func (m *mockGenerator) DerivePublic(_ context.Context, privateKey string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deriveCalls++
	if m.deriveErr != nil {
		return "", m.deriveErr
	}
	return "public-of-" + privateKey, nil
}

type runnerCall struct {
	Name  string
	Args  []string
	Stdin string
}

// mockRunner is a test double for command.Runner returning canned stdout per
// first argument.
type mockRunner struct {
	mu     sync.Mutex
	calls  []runnerCall
	stdout map[string]string
	err    error
}

func (m *mockRunner) Run(_ context.Context, stdin io.Reader, name string, args ...string) (command.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := runnerCall{Name: name, Args: args}
	if stdin != nil {
		data, _ := io.ReadAll(stdin)
		call.Stdin = string(data)
	}
	m.calls = append(m.calls, call)
	if m.err != nil {
		return command.Result{ExitCode: 1}, m.err
	}
	return command.Result{Stdout: m.stdout[args[0]]}, nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}
