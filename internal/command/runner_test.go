package command

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireSh(t)
	r := NewExecRunner(discardLogger())

	res, err := r.Run(context.Background(), nil, "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stdout != "out\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "out\n")
	}
	if res.Stderr != "err\n" {
		t.Errorf("Stderr = %q, want %q", res.Stderr, "err\n")
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}

func TestExecRunner_Stdin(t *testing.T) {
	requireSh(t)
	r := NewExecRunner(discardLogger())

	res, err := r.Run(context.Background(), strings.NewReader("piped"), "sh", "-c", "cat")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stdout != "piped" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "piped")
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireSh(t)
	r := NewExecRunner(discardLogger())

	res, err := r.Run(context.Background(), nil, "sh", "-c", "echo 'RTNETLINK answers: Operation not permitted' >&2; exit 3")
	if err == nil {
		t.Fatal("expected error")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %T is not *ExitError", err)
	}
	if exitErr.ExitCode != 3 || res.ExitCode != 3 {
		t.Errorf("exit code = %d/%d, want 3", exitErr.ExitCode, res.ExitCode)
	}
	if exitErr.Stderr != "RTNETLINK answers: Operation not permitted\n" {
		t.Errorf("Stderr = %q, not verbatim", exitErr.Stderr)
	}
	if errors.Is(err, ErrHelperUnavailable) {
		t.Error("exit error must not match ErrHelperUnavailable")
	}
}

func TestExecRunner_NotInstalled(t *testing.T) {
	r := NewExecRunner(discardLogger())

	_, err := r.Run(context.Background(), nil, "tunnelctl-definitely-missing-binary")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrHelperUnavailable) {
		t.Errorf("error %v does not match ErrHelperUnavailable", err)
	}
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Errorf("error %T is not *SpawnError", err)
	}
}

func TestExitError_Message(t *testing.T) {
	e := &ExitError{Name: "wg-quick", ExitCode: 1, Stderr: "wg-quick: `wg0-x' already exists\n"}
	if got := e.Error(); got != "wg-quick: wg-quick: `wg0-x' already exists" {
		t.Errorf("Error() = %q", got)
	}

	empty := &ExitError{Name: "ls", ExitCode: 2}
	if got := empty.Error(); got != "ls: exit status 2" {
		t.Errorf("Error() = %q", got)
	}
}

func TestExecRunner_LogsCarryComponent(t *testing.T) {
	requireSh(t)
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := NewExecRunner(logger).Run(context.Background(), nil, "sh", "-c", "true"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if out == "" {
		t.Fatal("expected a debug record")
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Count(line, "component=command") != 1 {
			t.Errorf("record without exactly one component attribute: %s", line)
		}
	}
}
