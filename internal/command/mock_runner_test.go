package command

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

type mockCall struct {
	Name string
	Args []string
}

// mockRunner is a test double for Runner.
type mockRunner struct {
	mu    sync.Mutex
	calls []mockCall

	result Result
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ io.Reader, name string, args ...string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mockCall{Name: name, Args: args})
	return m.result, m.err
}

type fakeRoot bool

func (f fakeRoot) IsRoot() bool { return bool(f) }

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}
