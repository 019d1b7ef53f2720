package logging

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const sampleLog = `{"time":"2026-03-01T10:00:02Z","level":"INFO","msg":"project launched","project":"/s/acme/shop/neutron.yml"}
{"time":"2026-03-01T10:00:01Z","level":"DEBUG","msg":"running hook","project":"/s/acme/shop/neutron.yml","phase":"prepare","capability":"layout"}
not json at all
{"time":"2026-03-01T10:00:03Z","level":"ERROR","msg":"hook failed","project":"/s/acme/blog/neutron.yml","phase":"launch","capability":"editor","error":"exit status 1"}
`

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func messages(entries []LogEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestReadLogs(t *testing.T) {
	t.Run("parses and sorts entries", func(t *testing.T) {
		dir := t.TempDir()
		writeLog(t, filepath.Join(dir, LogFileName), sampleLog)

		entries, err := ReadLogs(dir)
		if err != nil {
			t.Fatalf("ReadLogs failed: %v", err)
		}

		want := []string{"running hook", "project launched", "hook failed"}
		if diff := cmp.Diff(want, messages(entries)); diff != "" {
			t.Errorf("messages mismatch (-want +got):\n%s", diff)
		}

		hook := entries[0]
		if hook.Phase != "prepare" || hook.Capability != "layout" || hook.Level != LevelDebug {
			t.Errorf("entry = %+v", hook)
		}
		if entries[2].Attrs["error"] != "exit status 1" {
			t.Errorf("Attrs = %v, want the error attribute", entries[2].Attrs)
		}
	})

	t.Run("includes rotated backups", func(t *testing.T) {
		dir := t.TempDir()
		logPath := filepath.Join(dir, LogFileName)
		writeLog(t, logPath, `{"time":"2026-03-01T10:00:03Z","level":"INFO","msg":"newest"}`+"\n")
		writeLog(t, BackupPath(logPath, 1), `{"time":"2026-03-01T10:00:02Z","level":"INFO","msg":"older"}`+"\n")
		writeLog(t, BackupPath(logPath, 2), `{"time":"2026-03-01T10:00:01Z","level":"INFO","msg":"oldest"}`+"\n")

		entries, err := ReadLogs(dir)
		if err != nil {
			t.Fatalf("ReadLogs failed: %v", err)
		}
		if diff := cmp.Diff([]string{"oldest", "older", "newest"}, messages(entries)); diff != "" {
			t.Errorf("messages mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing log", func(t *testing.T) {
		if _, err := ReadLogs(t.TempDir()); err == nil {
			t.Error("ReadLogs should fail without a log file")
		}
	})
}

func TestFilterLogs(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, filepath.Join(dir, LogFileName), sampleLog)
	entries, err := ReadLogs(dir)
	if err != nil {
		t.Fatalf("ReadLogs failed: %v", err)
	}

	tests := []struct {
		name   string
		filter LogFilter
		want   []string
	}{
		{"empty filter", LogFilter{}, []string{"running hook", "project launched", "hook failed"}},
		{"level", LogFilter{Level: "info"}, []string{"project launched", "hook failed"}},
		{"project substring", LogFilter{Project: "acme/shop"}, []string{"running hook", "project launched"}},
		{"phase", LogFilter{Phase: "launch"}, []string{"hook failed"}},
		{"capability", LogFilter{Capability: "layout"}, []string{"running hook"}},
		{"message", LogFilter{MessageContains: "hook"}, []string{"running hook", "hook failed"}},
		{"since", LogFilter{Since: time.Date(2026, 3, 1, 10, 0, 2, 0, time.UTC)}, []string{"project launched", "hook failed"}},
		{"combined", LogFilter{Level: "WARN", Project: "shop"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messages(FilterLogs(entries, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterLogs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteLogEntries(t *testing.T) {
	entries := []LogEntry{{
		Timestamp:  time.Date(2026, 3, 1, 10, 0, 1, 0, time.UTC),
		Level:      LevelError,
		Message:    "hook failed",
		Project:    "/p/neutron.yml",
		Phase:      "launch",
		Capability: "layout",
		Attrs:      map[string]any{"error": "boom"},
	}}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteLogEntries(&buf, entries, "text"); err != nil {
			t.Fatalf("WriteLogEntries failed: %v", err)
		}
		want := `[2026-03-01 10:00:01.000] ERROR - hook failed (project=/p/neutron.yml, phase=launch, capability=layout) {"error":"boom"}` + "\n"
		if buf.String() != want {
			t.Errorf("text = %q, want %q", buf.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteLogEntries(&buf, entries, "json"); err != nil {
			t.Fatalf("WriteLogEntries failed: %v", err)
		}
		var got []LogEntry
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if len(got) != 1 || got[0].Capability != "layout" {
			t.Errorf("decoded = %+v", got)
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteLogEntries(&buf, entries, "CSV"); err != nil {
			t.Fatalf("WriteLogEntries failed: %v", err)
		}
		records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV output: %v", err)
		}
		if len(records) != 2 || records[1][5] != "layout" {
			t.Errorf("records = %v", records)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := WriteLogEntries(&bytes.Buffer{}, entries, "xml"); err == nil {
			t.Error("WriteLogEntries should reject unknown formats")
		}
	})
}
