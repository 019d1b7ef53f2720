package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/neutron-wm/neutron/internal/config"
	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/logging"
	"github.com/neutron-wm/neutron/internal/orchestrator"
	"github.com/neutron-wm/neutron/internal/picker"
	"github.com/neutron-wm/neutron/internal/project"
	"github.com/neutron-wm/neutron/internal/shell"
)

// env bundles the settings and collaborators a command runs with.
type env struct {
	settings *config.Settings
	logger   *logging.Logger
	runner   *shell.Runner
	orch     *orchestrator.Orchestrator

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// loadSettings returns the validated settings initConfig assembled.
func loadSettings() (*config.Settings, error) {
	if configErr != nil {
		return nil, errors.NewValidationError("unreadable settings file").WithValue(settingsFile).WithCause(configErr)
	}
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, errors.NewValidationError("invalid settings").WithCause(err)
	}
	return settings, nil
}

func newEnv(cmd *cobra.Command) (*env, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	logger := logging.NopLogger()
	if settings.Logging.Enabled {
		logger, err = logging.NewLoggerWithRotation(settings.Logging.Dir, settings.Logging.Level, logging.RotationConfig{
			MaxSizeMB:  settings.Logging.MaxSizeMB,
			MaxBackups: settings.Logging.MaxBackups,
		})
		if err != nil {
			return nil, err
		}
	}

	dry := dryRun(cmd.Flags())
	opts := []shell.Option{
		shell.WithSettle(settings.Delays.Command()),
		shell.WithLogger(logger),
	}
	if dry {
		opts = append(opts, shell.WithDryRun(cmd.OutOrStdout()))
	}
	runner := shell.NewRunner(settings.Shell, opts...)

	return &env{
		settings: settings,
		logger:   logger,
		runner:   runner,
		orch: orchestrator.New(settings, runner,
			orchestrator.WithLogger(logger),
			orchestrator.WithDryRun(dry),
		),
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

func (e *env) Close() {
	_ = e.logger.Close()
}

func (e *env) launch(ctx context.Context, specPath string) error {
	if err := e.orch.Launch(ctx, specPath); err != nil {
		return err
	}
	if !e.runner.DryRun() {
		fmt.Fprintf(e.out, "Launched %s\n", specPath)
	}
	return nil
}

// quit tears down the active session. Warnings, such as an unreadable
// active project, are reported and are not a failure.
func (e *env) quit(ctx context.Context) error {
	err := e.orch.Quit(ctx)
	if err != nil && errors.GetSeverity(err) == errors.SeverityWarning {
		fmt.Fprintf(e.errOut, "warning: %v\n", err)
		return nil
	}
	return err
}

// list shows the project picker and dispatches the choice.
func (e *env) list(ctx context.Context) error {
	entries, err := picker.Entries(e.settings.Paths, e.orch.Marker().Active())
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	chooser, err := picker.New(e.settings.Launcher.Command, e.runner, interactive, e.in, e.out)
	if err != nil {
		return err
	}

	choice, err := chooser.Choose(ctx, entries)
	if err != nil {
		return err
	}
	if choice == "" {
		e.logger.Debug("nothing picked")
		return nil
	}
	if project.IsList(choice) {
		return nil
	}
	return e.dispatch(ctx, choice)
}
