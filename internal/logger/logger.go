// Package logger provides structured logging functionality for the Kervan CLI tool.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides structured logging with different severity levels.
type Logger struct {
	infoLog    *log.Logger
	successLog *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	debugLog   *log.Logger
	debug      bool
	logFile    *os.File
}

func newLeveled(w io.Writer, debug bool) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		infoLog:    log.New(w, "[INFO] ", flags),
		successLog: log.New(w, "[DONE] ", flags),
		warningLog: log.New(w, "[WARNING] ", flags),
		errorLog:   log.New(w, "[ERROR] ", flags),
		debugLog:   log.New(w, "[DEBUG] ", flags),
		debug:      debug,
	}
}

// New creates a new Logger instance writing to stderr.
func New(debug bool) *Logger {
	return newLeveled(os.Stderr, debug)
}

// NewWithFile creates a new Logger instance that writes to both console and a file.
func NewWithFile(debug bool, logFilePath string) (*Logger, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	l := newLeveled(io.MultiWriter(os.Stderr, logFile), debug)
	l.logFile = logFile
	return l, nil
}

// Close closes the log file if one is open.
func (l *Logger) Close() error {
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.infoLog.Println(msg)
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.infoLog.Printf(format, args...)
}

// Success logs a success message.
func (l *Logger) Success(msg string) {
	l.successLog.Println(msg)
}

// Successf logs a formatted success message.
func (l *Logger) Successf(format string, args ...interface{}) {
	l.successLog.Printf(format, args...)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.warningLog.Println(msg)
}

// Warningf logs a formatted warning message.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.warningLog.Printf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.errorLog.Println(msg)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.errorLog.Printf(format, args...)
}

// Debug logs a debug message (only if debug mode is enabled).
func (l *Logger) Debug(msg string) {
	if l.debug {
		l.debugLog.Println(msg)
	}
}

// Debugf logs a formatted debug message (only if debug mode is enabled).
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.debug {
		l.debugLog.Printf(format, args...)
	}
}

// Stage logs a stage header for workflow progress.
func (l *Logger) Stage(stageNum int, description string) {
	l.Info("")
	l.Info("=========================================")
	l.Infof("Stage %d: %s", stageNum, description)
	l.Info("=========================================")
}

// GetTimestamp returns a timestamp string in the format YYYYMMDD-HHMMSS.
func GetTimestamp() string {
	return time.Now().Format("20060102-150405")
}
