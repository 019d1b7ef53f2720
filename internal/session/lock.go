package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/logging"
)

// Lock represents an acquired session lock
type Lock struct {
	// Operation is what the holder is doing ("launch", "quit")
	Operation string    `json:"operation"`
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	StartedAt time.Time `json:"started_at"`

	// Internal fields (not serialized)
	lockFile string
	logger   *logging.Logger
}

// AcquireLock takes the lock file at lockPath for operation. A lock left by
// a process that no longer runs is removed first. Returns an error matching
// errors.ErrSessionLocked if another live process holds the lock.
// The logger parameter is optional and can be nil.
func AcquireLock(lockPath, operation string, logger *logging.Logger) (*Lock, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	existing, err := ReadLock(lockPath)
	switch {
	case err == nil:
		if isProcessAlive(existing.PID) {
			logger.Error("failed to acquire lock",
				"operation", operation,
				"holder_pid", existing.PID,
				"holder_operation", existing.Operation,
			)
			return nil, lockedError(existing)
		}
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock: %w", err)
		}
		logger.Warn("stale lock cleaned", "old_pid", existing.PID)
	case !os.IsNotExist(err):
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove unreadable lock: %w", err)
		}
		logger.Warn("unreadable lock cleaned", "error", err.Error())
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	lock := &Lock{
		Operation: operation,
		PID:       os.Getpid(),
		Hostname:  hostname,
		StartedAt: time.Now(),
		lockFile:  lockPath,
		logger:    logger,
	}

	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lock: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	// O_EXCL fails if another process created the file since the check above
	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			if existing, readErr := ReadLock(lockPath); readErr == nil {
				return nil, lockedError(existing)
			}
			return nil, errors.NewSessionError("lock file exists", errors.ErrSessionLocked)
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(lockPath)
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}

	logger.Debug("session lock acquired", "operation", operation, "pid", lock.PID)
	return lock, nil
}

func lockedError(holder *Lock) error {
	return errors.NewSessionError(
		fmt.Sprintf("%s in progress (PID %d on %s)", holder.Operation, holder.PID, holder.Hostname),
		errors.ErrSessionLocked,
	)
}

// Release removes the lock file if this process still owns it.
// Safe to call multiple times.
func (l *Lock) Release() error {
	if l == nil || l.lockFile == "" {
		return nil
	}

	existing, err := ReadLock(l.lockFile)
	if err != nil {
		return nil
	}
	if existing.PID != l.PID {
		return nil
	}

	if err := os.Remove(l.lockFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	if l.logger != nil {
		l.logger.Debug("session lock released", "operation", l.Operation)
	}
	return nil
}

// ReadLock reads a lock file and returns the Lock info.
func ReadLock(lockPath string) (*Lock, error) {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		return nil, err
	}

	var lock Lock
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}
	lock.lockFile = lockPath

	return &lock, nil
}

// IsLocked reports whether a live process holds the lock at lockPath.
// Returns the lock info when a lock file exists, stale or not.
func IsLocked(lockPath string) (*Lock, bool) {
	lock, err := ReadLock(lockPath)
	if err != nil {
		return nil, false
	}
	return lock, isProcessAlive(lock.PID)
}

// isProcessAlive checks if a process with the given PID is still running.
func isProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	// On Unix, sending signal 0 checks if process exists without affecting it
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
