package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/neutron-wm/neutron/internal/errors"
)

// deadPID is above the Linux pid_max ceiling, so no process has it.
const deadPID = 1 << 30

func writeLockFile(t *testing.T, path string, pid int) {
	t.Helper()
	data, err := json.Marshal(Lock{Operation: "launch", PID: pid, Hostname: "test", StartedAt: time.Now()})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestAcquireLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neutron.lock")

	lock, err := AcquireLock(path, "launch", nil)
	if err != nil {
		t.Fatalf("AcquireLock() failed: %v", err)
	}

	info, err := ReadLock(path)
	if err != nil {
		t.Fatalf("ReadLock() failed: %v", err)
	}
	if info.PID != os.Getpid() {
		t.Errorf("PID = %d, want %d", info.PID, os.Getpid())
	}
	if info.Operation != "launch" {
		t.Errorf("Operation = %q, want %q", info.Operation, "launch")
	}

	if _, locked := IsLocked(path); !locked {
		t.Error("IsLocked() = false while held")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("lock file should be removed after Release")
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release() failed: %v", err)
	}
}

func TestAcquireLock_HeldByLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neutron.lock")
	writeLockFile(t, path, os.Getpid())

	_, err := AcquireLock(path, "quit", nil)
	if !errors.Is(err, errors.ErrSessionLocked) {
		t.Fatalf("AcquireLock() error = %v, want ErrSessionLocked", err)
	}
}

func TestAcquireLock_CleansStaleLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neutron.lock")
	writeLockFile(t, path, deadPID)

	if _, locked := IsLocked(path); locked {
		t.Fatal("IsLocked() = true for a dead PID")
	}

	lock, err := AcquireLock(path, "launch", nil)
	if err != nil {
		t.Fatalf("AcquireLock() over stale lock failed: %v", err)
	}
	defer lock.Release()

	info, err := ReadLock(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.PID != os.Getpid() {
		t.Errorf("PID = %d, want %d", info.PID, os.Getpid())
	}
}

func TestRelease_DoesNotRemoveForeignLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neutron.lock")

	lock, err := AcquireLock(path, "launch", nil)
	if err != nil {
		t.Fatal(err)
	}
	writeLockFile(t, path, deadPID)

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("Release() removed a lock owned by another process")
	}
}

func TestReadLock_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neutron.lock")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadLock(path); err == nil {
		t.Error("ReadLock() should fail on corrupt content")
	}
}

func TestAcquireLock_ReplacesUnreadableLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neutron.lock")
	if err := os.WriteFile(path, []byte("{truncated"), 0644); err != nil {
		t.Fatal(err)
	}

	lock, err := AcquireLock(path, "launch", nil)
	if err != nil {
		t.Fatalf("AcquireLock() over unreadable lock failed: %v", err)
	}
	defer lock.Release()
}
