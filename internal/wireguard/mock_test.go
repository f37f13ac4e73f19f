package wireguard

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/plexsphere/tunnelctl/internal/command"
)

// mockCall records a single command invocation.
type mockCall struct {
	Name       string
	Args       []string
	Privileged bool
}

type cannedResult struct {
	res command.Result
	err error
}

// mockExec is a test double for both command.Runner and command.Elevator.
// Responses are keyed by the command line ("name arg1 arg2").
type mockExec struct {
	mu        sync.Mutex
	calls     []mockCall
	responses map[string]cannedResult
}

func newMockExec() *mockExec {
	return &mockExec{responses: map[string]cannedResult{}}
}

func (m *mockExec) on(line string, stdout string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[line] = cannedResult{res: command.Result{Stdout: stdout}, err: err}
}

func (m *mockExec) record(privileged bool, name string, args []string) (command.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mockCall{Name: name, Args: args, Privileged: privileged})
	line := strings.Join(append([]string{name}, args...), " ")
	r, ok := m.responses[line]
	if !ok {
		return command.Result{ExitCode: -1}, &command.SpawnError{Name: name, Err: io.ErrUnexpectedEOF}
	}
	return r.res, r.err
}

func (m *mockExec) Run(_ context.Context, _ io.Reader, name string, args ...string) (command.Result, error) {
	return m.record(false, name, args)
}

func (m *mockExec) RunPrivileged(_ context.Context, name string, args ...string) (command.Result, error) {
	return m.record(true, name, args)
}

func (m *mockExec) callsFor(name string) []mockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []mockCall
	for _, c := range m.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// stubQuerier is a fixed AddressQuerier.
type stubQuerier struct {
	addrs []string
	err   error
	calls int
}

func (s *stubQuerier) GlobalAddresses(_ context.Context, _ string) ([]string, error) {
	s.calls++
	return s.addrs, s.err
}

// stubReporter is a fixed StateReporter.
type stubReporter struct {
	up     bool
	upErr  error
	ifaces []string
	err    error
	calls  int
}

func (s *stubReporter) InterfaceUp(_ context.Context, _ string) (bool, error) {
	s.calls++
	return s.up, s.upErr
}

func (s *stubReporter) ActiveInterfaces(_ context.Context) ([]string, error) {
	s.calls++
	return s.ifaces, s.err
}

func exitErr(name, stderr string) error {
	return &command.ExitError{Name: name, ExitCode: 1, Stderr: stderr}
}

func spawnErr(name string) error {
	return &command.SpawnError{Name: name, Err: io.ErrUnexpectedEOF}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}
