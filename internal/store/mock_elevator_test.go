package store

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/plexsphere/tunnelctl/internal/command"
)

type mockCall struct {
	Name string
	Args []string
}

// mockElevator is a test double for command.Elevator. Unless err is set it
// performs "cp" and "rm -f" for real so round trips can be observed.
type mockElevator struct {
	mu    sync.Mutex
	calls []mockCall

	err error

	// tempSeen records whether the temp file existed when cp was invoked.
	tempSeen bool
}

func (m *mockElevator) RunPrivileged(_ context.Context, name string, args ...string) (command.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mockCall{Name: name, Args: args})

	if name == "cp" && len(args) == 2 {
		if _, err := os.Stat(args[0]); err == nil {
			m.tempSeen = true
		}
	}
	if m.err != nil {
		return command.Result{ExitCode: 1}, m.err
	}

	switch name {
	case "cp":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return command.Result{ExitCode: 1}, &command.ExitError{Name: "cp", ExitCode: 1, Stderr: err.Error()}
		}
		if err := os.WriteFile(args[1], data, 0600); err != nil {
			return command.Result{ExitCode: 1}, &command.ExitError{Name: "cp", ExitCode: 1, Stderr: err.Error()}
		}
	case "rm":
		_ = os.Remove(args[len(args)-1])
	}
	return command.Result{}, nil
}

func (m *mockElevator) callsFor(name string) []mockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []mockCall
	for _, c := range m.calls {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}
