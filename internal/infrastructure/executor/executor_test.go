package executor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRunReportsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell test")
	}
	e := NewLocalExecutor("/bin/sh")

	code, err := e.Run(context.Background(), "true", t.TempDir())
	if err != nil || code != 0 {
		t.Fatalf("true: code=%d err=%v", code, err)
	}

	code, err = e.Run(context.Background(), "exit 3", t.TempDir())
	if err != nil {
		t.Fatalf("exit 3: %v", err)
	}
	if code != 3 {
		t.Fatalf("exit code = %d, want 3", code)
	}
}

func TestRunUsesGivenDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell test")
	}
	dir := t.TempDir()
	e := NewLocalExecutor("/bin/sh")

	code, err := e.Run(context.Background(), "touch marker", dir)
	if err != nil || code != 0 {
		t.Fatalf("touch: code=%d err=%v", code, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Fatalf("command did not run in %s: %v", dir, err)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	e := &LocalExecutor{shell: "/definitely/not/a/shell", flag: "-c"}
	code, err := e.Run(context.Background(), "true", t.TempDir())
	if err == nil {
		t.Fatal("missing shell did not error")
	}
	if code != -1 {
		t.Fatalf("code = %d, want -1", code)
	}
}

func TestRunCanceledContext(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell test")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewLocalExecutor("/bin/sh")
	code, _ := e.Run(ctx, "sleep 5", t.TempDir())
	if code == 0 {
		t.Fatal("canceled command reported success")
	}
}
