// Package capability implements the parts of a project session. Each
// capability takes part in every lifecycle phase; phases it has no work for
// are no-ops.
//
// Launch runs Prepare, Launch and Settle across all capabilities, phase by
// phase. Quit runs Quit on each.
package capability

import (
	"context"

	"github.com/neutron-wm/neutron/internal/config"
	"github.com/neutron-wm/neutron/internal/i3"
	"github.com/neutron-wm/neutron/internal/layout"
	"github.com/neutron-wm/neutron/internal/logging"
	"github.com/neutron-wm/neutron/internal/project"
	"github.com/neutron-wm/neutron/internal/shell"
)

// Phase names a lifecycle phase.
type Phase string

const (
	PhasePrepare Phase = "prepare"
	PhaseLaunch  Phase = "launch"
	PhaseSettle  Phase = "settle"
	PhaseQuit    Phase = "quit"
)

// Capability is one part of a project session.
type Capability interface {
	// Name identifies the capability in logs and dry-run output.
	Name() string

	// Prepare writes files and readies the environment before anything starts.
	Prepare(ctx context.Context) error
	// Launch starts the capability's programs.
	Launch(ctx context.Context) error
	// Settle runs once every capability has launched.
	Settle(ctx context.Context) error
	// Quit tears the capability down.
	Quit(ctx context.Context) error
}

// Run invokes phase p on c.
func Run(ctx context.Context, c Capability, p Phase) error {
	switch p {
	case PhasePrepare:
		return c.Prepare(ctx)
	case PhaseLaunch:
		return c.Launch(ctx)
	case PhaseSettle:
		return c.Settle(ctx)
	case PhaseQuit:
		return c.Quit(ctx)
	}
	return nil
}

// NopPhases provides no-op implementations of every phase. Capabilities
// embed it and override the phases they use.
type NopPhases struct{}

func (NopPhases) Prepare(context.Context) error { return nil }
func (NopPhases) Launch(context.Context) error  { return nil }
func (NopPhases) Settle(context.Context) error  { return nil }
func (NopPhases) Quit(context.Context) error    { return nil }

// Deps are the collaborators capabilities submit work through.
type Deps struct {
	Settings *config.Settings
	Sink     shell.Sink
	Gateway  *i3.Gateway
	Logger   *logging.Logger
}

// Build returns the capabilities p registers, in the fixed order network,
// editor workspace, layout. The layout is compiled here, so a malformed
// pane specification fails before any command is submitted.
func Build(p *project.Project, deps Deps) ([]Capability, error) {
	if deps.Logger == nil {
		deps.Logger = logging.NopLogger()
	}
	if deps.Gateway == nil {
		deps.Gateway = i3.NewGateway(deps.Settings.I3.MsgCommand, deps.Sink)
	}

	var caps []Capability
	if p.Network != nil {
		caps = append(caps, NewNetwork(p.Network, deps))
	}
	if p.Editor != nil {
		caps = append(caps, NewEditor(p.Editor, deps))
	}
	if p.Panes != nil {
		result, err := layout.Compile(p.Panes, layout.OptionsFromSettings(deps.Settings, p.Dir()))
		if err != nil {
			return nil, err
		}
		caps = append(caps, NewLayout(result, deps))
	}
	return caps, nil
}
