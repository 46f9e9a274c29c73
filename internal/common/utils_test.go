package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckCommand(t *testing.T) {
	if err := CheckCommand("ls"); err != nil {
		t.Errorf("Expected 'ls' to be found, got error: %v", err)
	}

	if err := CheckCommand("definitely-not-a-real-command-xyz"); err == nil {
		t.Error("Expected error for missing command, got nil")
	}
}

func TestRunCommand(t *testing.T) {
	output, err := RunCommand("echo", "hello")
	if err != nil {
		t.Fatalf("Expected echo to succeed, got error: %v", err)
	}
	if output != "hello\n" {
		t.Errorf("Expected output 'hello\\n', got %q", output)
	}

	if _, err := RunCommand("false"); err == nil {
		t.Error("Expected error for failing command, got nil")
	}
}

func TestRunCommandIn(t *testing.T) {
	dir := t.TempDir()

	res, err := RunCommandIn(context.Background(), dir, "pwd")
	if err != nil {
		t.Fatalf("Expected pwd to run, got error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", res.ExitCode)
	}
	resolved, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(res.Stdout[:len(res.Stdout)-1])
	if got != resolved {
		t.Errorf("Expected working directory %q, got %q", resolved, got)
	}
}

func TestRunCommandInNonZeroExit(t *testing.T) {
	res, err := RunCommandIn(context.Background(), t.TempDir(), "false")
	if err != nil {
		t.Fatalf("Expected non-zero exit to be reported via result, got error: %v", err)
	}
	if res.ExitCode == 0 {
		t.Error("Expected non-zero exit code")
	}
}

func TestRunCommandInMissingBinary(t *testing.T) {
	if _, err := RunCommandIn(context.Background(), t.TempDir(), "definitely-not-a-real-command-xyz"); err == nil {
		t.Error("Expected error for missing binary, got nil")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My VPC Project", "my-vpc-project"},
		{"demo_vpc", "demo_vpc"},
		{"weird!@#chars", "weirdchars"},
		{"Already-clean-123", "already-clean-123"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.input); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected directory at %s", path)
	}

	// Second call on an existing directory is a no-op.
	if err := EnsureDir(path); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}
