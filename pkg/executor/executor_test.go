package executor

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx := context.Background()
	e := New()

	out, err := e.Execute(ctx, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}

	_, err = e.Execute(ctx, "sh", "-c", "echo boom >&2; exit 3")
	var execErr *Error
	if !errors.As(err, &execErr) {
		t.Fatalf("Execute() error = %v, want *Error", err)
	}
	if execErr.Stderr != "boom" {
		t.Errorf("Stderr = %q, want %q", execErr.Stderr, "boom")
	}
}

func TestExecuteInDir(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()

	out, err := New().ExecuteInDir(context.Background(), dir, "sh", "-c", "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out))
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("ExecuteInDir() ran in %q, want %q", got, want)
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	_, err := New().Execute(context.Background(), "definitely-not-a-real-binary-tubesum")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("Execute() error = %v, want exec.ErrNotFound", err)
	}
}
