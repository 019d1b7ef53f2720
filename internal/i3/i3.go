// Package i3 builds and submits the window-manager commands neutron needs:
// appending a layout to a workspace, switching workspaces, and tearing a
// workspace down.
//
// Every command is an i3-msg invocation wrapped in a subshell with its
// output discarded, so the exit status of i3-msg is what the shell sink
// reports.
package i3

import (
	"context"
	"fmt"
	"strings"

	"github.com/neutron-wm/neutron/internal/shell"
)

// DefaultMsgCommand is the i3 IPC client.
const DefaultMsgCommand = "i3-msg"

// Gateway submits i3 commands through a shell sink.
type Gateway struct {
	msg  string
	sink shell.Sink
}

// NewGateway creates a Gateway using msgCommand as the IPC client.
func NewGateway(msgCommand string, sink shell.Sink) *Gateway {
	if msgCommand == "" {
		msgCommand = DefaultMsgCommand
	}
	return &Gateway{msg: msgCommand, sink: sink}
}

// AppendLayout switches to workspace and appends the layout file at path.
func (g *Gateway) AppendLayout(ctx context.Context, workspace, path string) error {
	_, err := g.sink.Run(ctx, AppendLayoutCommand(g.msg, workspace, path))
	return err
}

// Workspace switches to workspace.
func (g *Gateway) Workspace(ctx context.Context, workspace string) error {
	_, err := g.sink.Run(ctx, WorkspaceCommand(g.msg, workspace))
	return err
}

// KillWorkspace focuses workspace, walks focus up depth times, kills the
// focused container and switches to neutral.
func (g *Gateway) KillWorkspace(ctx context.Context, workspace string, depth int, neutral string) error {
	_, err := g.sink.Run(ctx, KillWorkspaceCommand(g.msg, workspace, depth, neutral))
	return err
}

// Message wraps an i3 command list for the shell. The list reaches
// msgCommand as a single argument whatever quotes it contains.
func Message(msgCommand, commands string) string {
	return fmt.Sprintf("( %s %s ) &> /dev/null", msgCommand, shellQuote(commands))
}

// shellQuote wraps s in single quotes for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// AppendLayoutCommand returns the command AppendLayout submits.
func AppendLayoutCommand(msgCommand, workspace, path string) string {
	return Message(msgCommand, fmt.Sprintf("workspace %s; append_layout %s", workspace, path))
}

// WorkspaceCommand returns the command Workspace submits.
func WorkspaceCommand(msgCommand, workspace string) string {
	return Message(msgCommand, "workspace "+workspace)
}

// KillWorkspaceCommand returns the command KillWorkspace submits.
func KillWorkspaceCommand(msgCommand, workspace string, depth int, neutral string) string {
	focus := make([]string, depth)
	for i := range focus {
		focus[i] = "focus parent"
	}
	return Message(msgCommand, fmt.Sprintf("workspace %s; %s, kill; workspace %s",
		workspace, strings.Join(focus, ", "), neutral))
}
