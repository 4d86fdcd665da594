package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndWrite(t *testing.T) {
	tempDir := t.TempDir()
	homeDir := filepath.Join(tempDir, "home")
	os.Setenv("HOME", homeDir)
	defer os.Unsetenv("HOME")

	if err := Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer Close()

	Error("listing %s failed: %v", "/tmp", "exit status 2")
	Info("applied listing to %s", "/tmp")

	logPath := filepath.Join(homeDir, ".config", "lsview", "lsview.log")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, `"level":"error"`) {
		t.Errorf("error entry missing from log: %s", content)
	}
	if !strings.Contains(content, "listing /tmp failed") {
		t.Errorf("formatted message missing from log: %s", content)
	}
}

func TestDisableSuppressesWrites(t *testing.T) {
	tempDir := t.TempDir()
	homeDir := filepath.Join(tempDir, "home")
	os.Setenv("HOME", homeDir)
	defer os.Unsetenv("HOME")

	if err := Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer Close()

	Disable()
	defer Enable()
	Warn("should not appear")

	logPath := filepath.Join(homeDir, ".config", "lsview", "lsview.log")
	data, _ := os.ReadFile(logPath)
	if strings.Contains(string(data), "should not appear") {
		t.Error("disabled logger still wrote")
	}
}

func TestRotation(t *testing.T) {
	tempDir := t.TempDir()
	homeDir := filepath.Join(tempDir, "home")
	os.Setenv("HOME", homeDir)
	defer os.Unsetenv("HOME")

	logDir := filepath.Join(homeDir, ".config", "lsview")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	logPath := filepath.Join(logDir, "lsview.log")

	f, err := os.Create(logPath)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Sparse file over the rotation threshold
	if err := f.Truncate(maxLogSize + 1); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	f.Close()

	if err := Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer Close()

	if _, err := os.Stat(logPath + ".old"); err != nil {
		t.Errorf("rotated file missing: %v", err)
	}
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("fresh log missing: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("log not rotated, size %d", info.Size())
	}
}
