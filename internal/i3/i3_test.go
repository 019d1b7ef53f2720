package i3

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/neutron-wm/neutron/internal/testutil"
)

func TestAppendLayoutCommand(t *testing.T) {
	got := AppendLayoutCommand("i3-msg", "3", "/tmp/neutron.i3-workspace")
	want := "( i3-msg 'workspace 3; append_layout /tmp/neutron.i3-workspace' ) &> /dev/null"
	if got != want {
		t.Errorf("AppendLayoutCommand() = %q, want %q", got, want)
	}
}

func TestWorkspaceCommand(t *testing.T) {
	got := WorkspaceCommand("i3-msg", "1")
	want := "( i3-msg 'workspace 1' ) &> /dev/null"
	if got != want {
		t.Errorf("WorkspaceCommand() = %q, want %q", got, want)
	}
}

func TestKillWorkspaceCommand(t *testing.T) {
	got := KillWorkspaceCommand("i3-msg", "3", 10, "1")

	focus := strings.TrimSuffix(strings.Repeat("focus parent, ", 10), ", ")
	want := "( i3-msg 'workspace 3; " + focus + ", kill; workspace 1' ) &> /dev/null"
	if got != want {
		t.Errorf("KillWorkspaceCommand() =\n%q\nwant\n%q", got, want)
	}
	if n := strings.Count(got, "focus parent"); n != 10 {
		t.Errorf("focus parent count = %d, want 10", n)
	}
}

func TestKillWorkspaceCommand_Depth(t *testing.T) {
	got := KillWorkspaceCommand("i3-msg", "4", 2, "1")
	want := "( i3-msg 'workspace 4; focus parent, focus parent, kill; workspace 1' ) &> /dev/null"
	if got != want {
		t.Errorf("KillWorkspaceCommand() = %q, want %q", got, want)
	}
}

func TestAppendLayoutCommand_QuotesSingleQuotes(t *testing.T) {
	got := AppendLayoutCommand("i3-msg", "3", "/home/me/it's/layout")
	want := `( i3-msg 'workspace 3; append_layout /home/me/it'\''s/layout' ) &> /dev/null`
	if got != want {
		t.Errorf("AppendLayoutCommand() = %q, want %q", got, want)
	}
}

func TestShellQuote(t *testing.T) {
	for _, s := range []string{"workspace 3", "it's", "''", "a 'b' c", "$HOME; kill"} {
		out, err := exec.Command("sh", "-c", "printf %s "+shellQuote(s)).Output()
		if err != nil {
			t.Fatalf("sh failed for %q: %v", s, err)
		}
		if string(out) != s {
			t.Errorf("shell saw %q, want %q", out, s)
		}
	}
}

func TestGatewaySubmitsThroughSink(t *testing.T) {
	sink := testutil.NewRecordingSink()
	g := NewGateway("", sink)
	ctx := context.Background()

	if err := g.AppendLayout(ctx, "3", "/tmp/layout"); err != nil {
		t.Fatalf("AppendLayout() failed: %v", err)
	}
	if err := g.Workspace(ctx, "1"); err != nil {
		t.Fatalf("Workspace() failed: %v", err)
	}
	if err := g.KillWorkspace(ctx, "3", 1, "1"); err != nil {
		t.Fatalf("KillWorkspace() failed: %v", err)
	}

	want := []string{
		"( i3-msg 'workspace 3; append_layout /tmp/layout' ) &> /dev/null",
		"( i3-msg 'workspace 1' ) &> /dev/null",
		"( i3-msg 'workspace 3; focus parent, kill; workspace 1' ) &> /dev/null",
	}
	if diff := cmp.Diff(want, sink.Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestGatewayPropagatesFailure(t *testing.T) {
	sink := testutil.NewRecordingSink()
	sink.FailOn("workspace 9", 2)
	g := NewGateway("i3-msg", sink)

	if err := g.Workspace(context.Background(), "9"); err == nil {
		t.Error("Workspace() should surface the sink failure")
	}
}
