// Package orchestrator runs a project session through its lifecycle.
//
// Launch prepares, launches and settles every capability of a project,
// phase by phase, then records the project in the session marker. Quit
// reads and removes the marker and runs the quit phase of the project it
// names. At most one session is active: launching while a marker exists
// quits the previous project first.
//
// Every step is sequential. Fixed settle delays separate hooks and phases
// so the window manager can catch up with the windows being started.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/neutron-wm/neutron/internal/capability"
	"github.com/neutron-wm/neutron/internal/clock"
	"github.com/neutron-wm/neutron/internal/config"
	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/i3"
	"github.com/neutron-wm/neutron/internal/logging"
	"github.com/neutron-wm/neutron/internal/project"
	"github.com/neutron-wm/neutron/internal/session"
	"github.com/neutron-wm/neutron/internal/shell"
)

// launchPhases run in this order, each across all capabilities.
var launchPhases = []capability.Phase{
	capability.PhasePrepare,
	capability.PhaseLaunch,
	capability.PhaseSettle,
}

// Orchestrator drives session launch and quit.
type Orchestrator struct {
	settings *config.Settings
	sink     shell.Sink
	gateway  *i3.Gateway
	marker   *session.Marker
	clock    clock.Clock
	logger   *logging.Logger
	dryRun   bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock replaces the clock used for settle delays.
func WithClock(c clock.Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithDryRun leaves the session marker untouched and skips quitting a
// previous session. Commands still go to the sink, which is expected to
// print rather than run them.
func WithDryRun(dryRun bool) Option {
	return func(o *Orchestrator) { o.dryRun = dryRun }
}

// New creates an Orchestrator submitting commands through sink.
func New(settings *config.Settings, sink shell.Sink, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		settings: settings,
		sink:     sink,
		gateway:  i3.NewGateway(settings.I3.MsgCommand, sink),
		marker:   session.NewMarker(settings.Session.MarkerFile),
		clock:    clock.Real(),
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Marker returns the session marker the orchestrator maintains.
func (o *Orchestrator) Marker() *session.Marker { return o.marker }

// Load parses the project file and builds its capabilities without
// submitting any command.
func (o *Orchestrator) Load(projectFile string) (*project.Project, []capability.Capability, error) {
	p, err := project.Load(projectFile)
	if err != nil {
		return nil, nil, err
	}
	caps, err := capability.Build(p, capability.Deps{
		Settings: o.settings,
		Sink:     o.sink,
		Gateway:  o.gateway,
		Logger:   o.logger.WithProject(p.File),
	})
	if err != nil {
		return nil, nil, err
	}
	return p, caps, nil
}

// Launch starts the project whose file is projectFile. A malformed project
// fails before any command is submitted. An active session is quit first.
func (o *Orchestrator) Launch(ctx context.Context, projectFile string) error {
	lock, err := o.lock("launch")
	if err != nil {
		return err
	}
	defer lock.Release()

	p, caps, err := o.Load(projectFile)
	if err != nil {
		return err
	}
	log := o.logger.WithProject(p.File)

	if !o.dryRun && o.marker.Active() {
		log.Info("quitting active session before launch")
		if err := o.quit(ctx); err != nil {
			if errors.GetSeverity(err) != errors.SeverityWarning {
				return err
			}
			log.Warn("previous session could not be quit cleanly", "error", err.Error())
		}
		o.clock.Sleep(o.settings.Delays.Relaunch())
	}

	log.Info("launching project", "capabilities", len(caps))
	for i, phase := range launchPhases {
		if i > 0 {
			o.clock.Sleep(o.settings.Delays.Phase())
		}
		if err := o.runPhase(ctx, log, caps, phase); err != nil {
			return err
		}
	}

	if o.dryRun {
		return nil
	}
	if err := o.marker.Write(p.File); err != nil {
		return errors.NewSessionError("failed to record active project", err).WithProject(p.File)
	}
	log.Info("project launched")
	return nil
}

// Quit tears down the active session. Without one it does nothing. When
// the marker names a project that cannot be loaded, the marker is removed
// and the returned error matches errors.ErrMarkerRead with warning
// severity.
func (o *Orchestrator) Quit(ctx context.Context) error {
	lock, err := o.lock("quit")
	if err != nil {
		return err
	}
	defer lock.Release()

	return o.quit(ctx)
}

func (o *Orchestrator) quit(ctx context.Context) error {
	projectFile, ok, err := o.marker.Read()
	if err != nil {
		return errors.NewSessionError("failed to read session marker", err)
	}
	if !ok {
		o.logger.Info("no active session to quit")
		return nil
	}

	if !o.dryRun {
		if err := o.marker.Clear(); err != nil {
			return errors.NewSessionError("failed to clear session marker", err).WithProject(projectFile)
		}
	}

	_, caps, err := o.Load(projectFile)
	if err != nil {
		return errors.NewSessionError("active project could not be read",
			fmt.Errorf("%w: %v", errors.ErrMarkerRead, err)).
			WithProject(projectFile).
			WithSeverity(errors.SeverityWarning)
	}

	log := o.logger.WithProject(projectFile)
	if err := o.runPhase(ctx, log, caps, capability.PhaseQuit); err != nil {
		return err
	}
	log.Info("project quit")
	return nil
}

func (o *Orchestrator) runPhase(ctx context.Context, log *logging.Logger, caps []capability.Capability, phase capability.Phase) error {
	log = log.WithPhase(string(phase))
	for _, c := range caps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrCanceled, err)
		}
		o.clock.Sleep(o.settings.Delays.Hook())

		log.WithCapability(c.Name()).Debug("running hook")
		if err := capability.Run(ctx, c, phase); err != nil {
			log.WithCapability(c.Name()).Error("hook failed", "error", err.Error())
			return errors.Wrapf(err, "%s %s", c.Name(), phase)
		}
	}
	return nil
}

func (o *Orchestrator) lock(operation string) (*session.Lock, error) {
	if o.dryRun {
		return nil, nil
	}
	return session.AcquireLock(o.settings.Session.LockFile, operation, o.logger)
}

// Status describes the session state.
type Status struct {
	// Active is true when a session marker exists.
	Active bool
	// ProjectFile is the active project's file.
	ProjectFile string
	// Lock is the lock holder, when a live process holds the lock.
	Lock *session.Lock
}

// Status reports the active project and any in-flight operation.
func (o *Orchestrator) Status() (*Status, error) {
	projectFile, ok, err := o.marker.Read()
	if err != nil {
		return nil, errors.NewSessionError("failed to read session marker", err)
	}
	st := &Status{Active: ok, ProjectFile: projectFile}
	if lock, held := session.IsLocked(o.settings.Session.LockFile); held {
		st.Lock = lock
	}
	return st, nil
}
