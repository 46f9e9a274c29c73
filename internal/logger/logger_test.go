package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerNew(t *testing.T) {
	log := New(false)
	if log == nil {
		t.Fatal("Expected logger to be created, got nil")
	}
	if log.debug {
		t.Error("Expected debug to be false")
	}

	logDebug := New(true)
	if !logDebug.debug {
		t.Error("Expected debug to be true")
	}
}

func TestLoggerNewWithFile(t *testing.T) {
	tmpDir := t.TempDir()
	logFilePath := filepath.Join(tmpDir, "test.log")

	log, err := NewWithFile(false, logFilePath)
	if err != nil {
		t.Fatalf("Failed to create logger with file: %v", err)
	}

	if log.logFile == nil {
		t.Fatal("Expected log file to be set, got nil")
	}

	log.Info("test message")
	log.Close()

	content, err := os.ReadFile(logFilePath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "test message") {
		t.Error("Expected log file to contain 'test message'")
	}
}

func TestLoggerClose(t *testing.T) {
	log := New(false)
	if err := log.Close(); err != nil {
		t.Errorf("Expected Close() to succeed without file, got error: %v", err)
	}
}

func TestLoggerDebugSuppressed(t *testing.T) {
	tmpDir := t.TempDir()
	logFilePath := filepath.Join(tmpDir, "debug.log")

	log, err := NewWithFile(false, logFilePath)
	if err != nil {
		t.Fatalf("Failed to create logger with file: %v", err)
	}
	log.Debug("hidden message")
	log.Close()

	content, _ := os.ReadFile(logFilePath)
	if strings.Contains(string(content), "hidden message") {
		t.Error("Expected debug message to be suppressed when debug is disabled")
	}
}

func TestLoggerStage(t *testing.T) {
	tmpDir := t.TempDir()
	logFilePath := filepath.Join(tmpDir, "stage.log")

	log, err := NewWithFile(false, logFilePath)
	if err != nil {
		t.Fatalf("Failed to create logger with file: %v", err)
	}
	log.Stage(2, "Transforming VPC data to AWS format")
	log.Close()

	content, _ := os.ReadFile(logFilePath)
	if !strings.Contains(string(content), "Stage 2: Transforming VPC data to AWS format") {
		t.Error("Expected stage header in log output")
	}
}

func TestGetTimestamp(t *testing.T) {
	ts := GetTimestamp()
	if len(ts) != 15 {
		t.Errorf("Expected timestamp of length 15 (YYYYMMDD-HHMMSS), got %q", ts)
	}
	if ts[8] != '-' {
		t.Errorf("Expected '-' separator at position 8, got %q", ts)
	}
}
