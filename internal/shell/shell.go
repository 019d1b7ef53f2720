// Package shell submits command strings to a system shell. It is the only
// place neutron starts processes.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/neutron-wm/neutron/internal/clock"
	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/logging"
)

// Sink accepts command strings. Run returns the command's standard output.
// A non-zero exit is returned as an *errors.GatewayError.
type Sink interface {
	Run(ctx context.Context, command string) (string, error)
}

// Runner is a Sink that hands every command to "<shell> -c" and waits a
// settle delay afterwards.
type Runner struct {
	shell  string
	settle time.Duration
	clock  clock.Clock
	logger *logging.Logger

	// dryRun, when non-nil, receives commands instead of the shell
	dryRun io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithSettle sets the delay waited after every command.
func WithSettle(d time.Duration) Option {
	return func(r *Runner) { r.settle = d }
}

// WithClock replaces the clock used for the settle delay.
func WithClock(c clock.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithLogger sets the logger commands are recorded to.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithDryRun prints commands to w instead of running them.
func WithDryRun(w io.Writer) Option {
	return func(r *Runner) { r.dryRun = w }
}

// NewRunner creates a Runner for the given shell binary.
func NewRunner(shell string, opts ...Option) *Runner {
	r := &Runner{
		shell:  shell,
		clock:  clock.Real(),
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DryRun reports whether commands are printed instead of run.
func (r *Runner) DryRun() bool { return r.dryRun != nil }

// Run executes command and waits the settle delay.
func (r *Runner) Run(ctx context.Context, command string) (string, error) {
	if r.dryRun != nil {
		r.logger.Debug("dry run", "command", command)
		if _, err := fmt.Fprintln(r.dryRun, command); err != nil {
			return "", fmt.Errorf("failed to print command: %w", err)
		}
		return "", nil
	}

	r.logger.Debug("running command", "command", command)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	r.clock.Sleep(r.settle)

	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", errors.ErrCanceled, ctx.Err())
		}
		gerr := errors.NewGatewayError("command failed", err).
			WithCommand(command).
			WithOutput(strings.TrimSpace(stderr.String()))
		if exitErr, ok := err.(*exec.ExitError); ok {
			gerr = gerr.WithExitCode(exitErr.ExitCode())
		}
		r.logger.Error("command failed", "command", command, "error", gerr.Error())
		return stdout.String(), gerr
	}

	return stdout.String(), nil
}
