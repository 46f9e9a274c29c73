// Package common provides utility functions used across the Kervan CLI.
package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CmdResult holds the captured outcome of a subprocess invocation.
type CmdResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CheckCommand checks if a command is available in the system PATH.
func CheckCommand(cmd string) error {
	_, err := exec.LookPath(cmd)
	if err != nil {
		return fmt.Errorf("command '%s' not found in PATH", cmd)
	}
	return nil
}

// RunCommand executes a command and returns the combined output and error.
// If the command fails, the error will include both the error and the command output.
func RunCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("command failed: %w", err)
	}
	return string(output), nil
}

// RunCommandIn executes a command synchronously in the given working directory
// and captures stdout, stderr, and the exit code separately. A non-zero exit
// is reported through CmdResult.ExitCode rather than the error return, which
// is reserved for failures to start the process at all.
func RunCommandIn(ctx context.Context, dir, name string, args ...string) (*CmdResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}
	return &CmdResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

// SanitizeName sanitizes a string for use in file/directory names.
func SanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	// Keep only alphanumeric characters, hyphens, and underscores
	var result strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	return nil
}
