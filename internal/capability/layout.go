package capability

import (
	"context"

	"github.com/neutron-wm/neutron/internal/layout"
)

// Layout places the compiled layout on the project workspace, starts the
// windows it swallows and tears the workspace down on quit.
type Layout struct {
	result *layout.Result
	deps   Deps
}

// NewLayout creates the layout capability for a compiled layout.
func NewLayout(result *layout.Result, deps Deps) *Layout {
	return &Layout{result: result, deps: deps}
}

func (l *Layout) Name() string { return "layout" }

// Result returns the compiled layout.
func (l *Layout) Result() *layout.Result { return l.result }

func (l *Layout) Prepare(ctx context.Context) error {
	path := l.deps.Settings.Session.LayoutFile
	if err := layout.SaveFragments(path, l.result.Root); err != nil {
		return err
	}
	return l.deps.Gateway.AppendLayout(ctx, l.deps.Settings.I3.Workspace, path)
}

func (l *Layout) Launch(ctx context.Context) error {
	for _, command := range l.result.LaunchCommands {
		if _, err := l.deps.Sink.Run(ctx, command); err != nil {
			return err
		}
	}
	return nil
}

// Settle switches away from the project workspace and back so i3 focuses
// the swallowed windows.
func (l *Layout) Settle(ctx context.Context) error {
	if err := l.deps.Gateway.Workspace(ctx, l.deps.Settings.I3.NeutralWorkspace); err != nil {
		return err
	}
	return l.deps.Gateway.Workspace(ctx, l.deps.Settings.I3.Workspace)
}

func (l *Layout) Quit(ctx context.Context) error {
	for _, command := range l.result.QuitCommands {
		if _, err := l.deps.Sink.Run(ctx, command); err != nil {
			return err
		}
	}
	i3cfg := l.deps.Settings.I3
	return l.deps.Gateway.KillWorkspace(ctx, i3cfg.Workspace, i3cfg.FocusParentDepth, i3cfg.NeutralWorkspace)
}
