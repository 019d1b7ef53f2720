// Package picker asks the user which project to launch. An external
// launcher such as rofi is used when one is configured; otherwise an
// interactive list is shown on the terminal.
package picker

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/project"
	"github.com/neutron-wm/neutron/internal/shell"
)

// Chooser returns the entry the user picked, or "" when nothing was picked.
type Chooser interface {
	Choose(ctx context.Context, entries []string) (string, error)
}

// Entries lists every discoverable project under roots as picker entries.
// The quit entry is appended when a session is active.
func Entries(roots []string, active bool) ([]string, error) {
	listings, err := project.Discover(roots)
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover projects")
	}

	entries := make([]string, 0, len(listings)+1)
	for _, l := range listings {
		entries = append(entries, l.Entry())
	}
	if active {
		entries = append(entries, project.QuitEntry)
	}
	return entries, nil
}

// Launcher runs an external menu program. Its template receives the
// "|"-joined entries through %s and prints the choice.
type Launcher struct {
	template string
	sink     shell.Sink
}

// NewLauncher creates a Launcher running template through sink.
func NewLauncher(template string, sink shell.Sink) *Launcher {
	return &Launcher{template: template, sink: sink}
}

// Command returns the shell command Choose submits for entries.
func (l *Launcher) Command(entries []string) string {
	return fmt.Sprintf(l.template, strings.Join(entries, "|"))
}

func (l *Launcher) Choose(ctx context.Context, entries []string) (string, error) {
	out, err := l.sink.Run(ctx, l.Command(entries))
	if err != nil {
		// menus exit non-zero when dismissed
		if errors.Is(err, errors.ErrCommandFailed) && strings.TrimSpace(out) == "" {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Terminal shows an interactive list.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal creates a Terminal chooser reading keys from in and drawing
// to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func (t *Terminal) Choose(ctx context.Context, entries []string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	program := tea.NewProgram(newModel(entries),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		return "", errors.Wrap(err, "picker failed")
	}
	if m, ok := final.(model); ok {
		return m.choice, nil
	}
	return "", nil
}

// New picks the chooser for the environment: the launcher when a template
// is configured, the terminal list when interactive is true.
func New(template string, sink shell.Sink, interactive bool, in io.Reader, out io.Writer) (Chooser, error) {
	switch {
	case template != "":
		return NewLauncher(template, sink), nil
	case interactive:
		return NewTerminal(in, out), nil
	default:
		return nil, errors.NewValidationError("no launcher command configured and not running in a terminal").
			WithField("launcher.command")
	}
}
