// Package session tracks the active project. A marker file holds the
// absolute path of the active project's neutron.yml; its presence means a
// session is running. A lock file serializes neutron processes that read
// or write the marker.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Marker is the session marker file.
type Marker struct {
	path string
}

// NewMarker returns the marker stored at path.
func NewMarker(path string) *Marker {
	return &Marker{path: path}
}

// Path returns the marker file location.
func (m *Marker) Path() string { return m.path }

// Active reports whether a session marker exists.
func (m *Marker) Active() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Read returns the project file recorded in the marker. ok is false when
// no marker exists.
func (m *Marker) Read() (projectFile string, ok bool, err error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read session marker: %w", err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Write records projectFile as the active project.
func (m *Marker) Write(projectFile string) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create marker directory: %w", err)
	}
	return atomicWriteFile(m.path, []byte(projectFile), 0644)
}

// Clear removes the marker. A missing marker is not an error.
func (m *Marker) Clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session marker: %w", err)
	}
	return nil
}

// atomicWriteFile writes data to a temp file in the same directory and
// renames it over path.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".neutron-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
