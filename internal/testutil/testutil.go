// Package testutil provides testing utilities for neutron tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/neutron-wm/neutron/internal/errors"
)

// SetupProjectTree creates a temporary directory populated with files.
// The files map contains relative paths to file contents. Returns the
// directory, which is cleaned up when the test completes.
func SetupProjectTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for path, content := range files {
		WriteFile(t, filepath.Join(dir, path), content)
	}
	return dir
}

// WriteProject writes <root>/<namespace>/<name>/neutron.yml and returns the
// project directory.
func WriteProject(t *testing.T, root, namespace, name, content string) string {
	t.Helper()

	dir := filepath.Join(root, namespace, name)
	WriteFile(t, filepath.Join(dir, "neutron.yml"), content)
	return dir
}

// WriteFile creates path and its parent directories with content.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// RecordingSink is a shell sink that records commands instead of running
// them. Commands containing a registered substring can be made to fail or
// to produce output.
type RecordingSink struct {
	mu       sync.Mutex
	commands []string
	failures map[string]int
	outputs  map[string]string
}

// NewRecordingSink creates an empty RecordingSink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{
		failures: make(map[string]int),
		outputs:  make(map[string]string),
	}
}

// FailOn makes every command containing substr fail with exitCode.
func (s *RecordingSink) FailOn(substr string, exitCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[substr] = exitCode
}

// RespondTo makes every command containing substr print output.
func (s *RecordingSink) RespondTo(substr, output string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[substr] = output
}

// Run records command and returns the configured output or failure.
func (s *RecordingSink) Run(_ context.Context, command string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands = append(s.commands, command)
	for substr, code := range s.failures {
		if strings.Contains(command, substr) {
			return "", errors.NewGatewayError("command failed", nil).
				WithCommand(command).
				WithExitCode(code)
		}
	}
	for substr, output := range s.outputs {
		if strings.Contains(command, substr) {
			return output, nil
		}
	}
	return "", nil
}

// Commands returns every recorded command in submission order.
func (s *RecordingSink) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Reset forgets the recorded commands but keeps failures and outputs.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = nil
}
