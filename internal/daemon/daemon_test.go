package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func withPIDFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run", "watch.pid")

	original := PIDFile
	PIDFile = func() string { return path }
	t.Cleanup(func() { PIDFile = original })

	return path
}

func TestWriteAndReadPID(t *testing.T) {
	path := withPIDFile(t)

	if err := WritePID(); err != nil {
		t.Fatalf("WritePID failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PID file was not created: %v", err)
	}

	pid, err := ReadPID()
	if err != nil {
		t.Fatalf("ReadPID failed: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("ReadPID = %d, want %d", pid, os.Getpid())
	}

	running, runningPID, startTime := IsRunning()
	if !running || runningPID != os.Getpid() {
		t.Errorf("IsRunning = %v, %d; want true, %d", running, runningPID, os.Getpid())
	}
	if startTime.IsZero() {
		t.Error("Expected a start time")
	}

	if err := RemovePID(); err != nil {
		t.Fatalf("RemovePID failed: %v", err)
	}
	if running, _, _ := IsRunning(); running {
		t.Error("Expected not running after RemovePID")
	}
}

func TestReadPIDMissing(t *testing.T) {
	withPIDFile(t)

	if _, err := ReadPID(); err == nil {
		t.Error("Expected error for missing PID file")
	}
	// Removing a missing PID file is not an error
	if err := RemovePID(); err != nil {
		t.Errorf("RemovePID failed: %v", err)
	}
	if err := Stop(); err == nil {
		t.Error("Stop should fail when nothing is running")
	}
}

func TestReadPIDInvalid(t *testing.T) {
	path := withPIDFile(t)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("not-a-pid\n"), 0644); err != nil {
		t.Fatalf("Failed to write PID file: %v", err)
	}

	if _, err := ReadPID(); err == nil {
		t.Error("Expected error for invalid PID")
	}
}
