package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	zl      zerolog.Logger
	logFile *os.File
	mu      sync.Mutex
	enabled = true
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
)

// Init opens the log file and builds the logger on top of it. The TUI owns
// the terminal while running, so nothing is ever written to stderr.
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".config", "lsview")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "lsview.log")

	// Check if log file needs rotation
	if info, err := os.Stat(logPath); err == nil {
		if info.Size() > maxLogSize {
			// Rotate log by renaming to .old
			oldPath := logPath + ".old"
			os.Remove(oldPath) // Remove old backup if exists
			os.Rename(logPath, oldPath)
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	logFile = file
	zl = zerolog.New(file).With().Timestamp().Logger()
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Disable disables logging (useful for tests)
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// Enable enables logging
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Error logs an error message
func Error(format string, args ...any) {
	log(zerolog.ErrorLevel, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	log(zerolog.WarnLevel, format, args...)
}

// Info logs an informational message
func Info(format string, args ...any) {
	log(zerolog.InfoLevel, format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	log(zerolog.DebugLevel, format, args...)
}

func log(level zerolog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logFile == nil {
		return
	}

	zl.WithLevel(level).Msgf(format, args...)
}
