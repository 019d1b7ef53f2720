package layout

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/neutron-wm/neutron/internal/config"
	"github.com/neutron-wm/neutron/internal/errors"
)

// Options carries everything Compile needs besides the pane spec.
type Options struct {
	// BaseDir resolves terminal paths. It is the project directory.
	BaseDir     string
	BorderWidth int
	Terminal    config.TerminalConfig
	Browser     config.AppConfig
	Editor      config.AppConfig
}

// OptionsFromSettings builds compile options for a project rooted at baseDir.
func OptionsFromSettings(s *config.Settings, baseDir string) Options {
	return Options{
		BaseDir:     baseDir,
		BorderWidth: s.I3.BorderWidth,
		Terminal:    s.Terminal,
		Browser:     s.Browser,
		Editor:      s.Editor,
	}
}

// Result is a compiled layout.
type Result struct {
	// Root is always a tabbed container with percent 1.
	Root *Node
	// LaunchCommands start the windows the leaves swallow, in leaf order.
	LaunchCommands []string
	// QuitCommands run before the workspace is torn down, in leaf order.
	QuitCommands []string
}

// Detached wraps command so the shell backgrounds it and discards its output.
func Detached(command string) string {
	return "( " + command + " & ) &> /dev/null"
}

// Compile turns spec into a layout tree plus the commands that populate it.
// Compile is pure: the same spec and options always give the same result.
// Malformed input returns an *errors.SpecError and no result.
func Compile(spec PaneSpec, opts Options) (*Result, error) {
	if len(spec) == 0 {
		return nil, errors.NewSpecError("pane specification is empty").WithPath("Root")
	}

	c := &compiler{opts: opts}
	nodes, err := c.level(spec, []string{"Root"})
	if err != nil {
		return nil, err
	}

	return &Result{
		Root:           NewContainer(Tabbed, 1, nodes...),
		LaunchCommands: c.launch,
		QuitCommands:   c.quit,
	}, nil
}

type compiler struct {
	opts   Options
	launch []string
	quit   []string
}

func (c *compiler) level(spec PaneSpec, path []string) ([]*Node, error) {
	lastLabel := spec[len(spec)-1].Label

	nodes := make([]*Node, 0, len(spec))
	for _, entry := range spec {
		itemPath := append(append([]string(nil), path...), entry.Label)
		node, err := c.item(entry.Label, entry.Item, lastLabel, itemPath)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (c *compiler) item(label string, item Item, lastLabel string, path []string) (*Node, error) {
	switch item.Kind {
	case KindTerminal:
		return c.terminal(label, item, path)
	case KindBrowser:
		if c.opts.Browser.Command != "" {
			c.launch = append(c.launch, Detached(c.opts.Browser.Command))
		}
		return NewLeaf(paneName(c.opts.Browser.Title), c.opts.BorderWidth, staticSwallows(c.opts.Browser.Targets)...), nil
	case KindEditor:
		return NewLeaf(paneName(c.opts.Editor.Title), c.opts.BorderWidth, staticSwallows(c.opts.Editor.Targets)...), nil
	case KindGroup:
		return c.group(label, item, lastLabel, path)
	default:
		return NewLeaf("Custom "+label, c.opts.BorderWidth), nil
	}
}

func (c *compiler) terminal(label string, item Item, path []string) (*Node, error) {
	if item.Path == "" {
		return nil, errors.NewSpecError("terminal is missing a path").WithPath(path...)
	}

	dir, err := filepath.Abs(filepath.Join(c.opts.BaseDir, item.Path))
	if err != nil {
		return nil, errors.NewSpecError("terminal path cannot be resolved").WithPath(path...).WithCause(err)
	}

	command := fmt.Sprintf(c.opts.Terminal.Command, label, label, dir)
	if item.Command != "" {
		command += " -e " + item.Command
	}
	c.launch = append(c.launch, Detached(command))
	for _, q := range item.Quit {
		c.quit = append(c.quit, Detached(q))
	}

	swallows := make([]Swallow, 0, len(c.opts.Terminal.Targets))
	for _, kind := range sortedKinds(c.opts.Terminal.Targets) {
		swallows = append(swallows, Swallow{Kind: kind, Pattern: fmt.Sprintf(c.opts.Terminal.Targets[kind], label)})
	}
	return NewLeaf(paneName(label), c.opts.BorderWidth, swallows...), nil
}

func (c *compiler) group(label string, item Item, lastLabel string, path []string) (*Node, error) {
	if len(item.Children) == 0 {
		if item.Sizing.Axis != AxisNone {
			return nil, errors.NewSpecError("sizing hint given without children").WithPath(path...)
		}
		return nil, errors.NewSpecError("group has no children").WithPath(path...)
	}

	layout, percent := Tabbed, 1.0
	switch item.Sizing.Axis {
	case AxisHeight:
		layout, percent = SplitH, item.Sizing.Fraction
	case AxisWidth:
		layout, percent = SplitV, item.Sizing.Fraction
	}
	if layout != Tabbed && strings.EqualFold(label, lastLabel) {
		layout, percent = Tabbed, 1
	}

	children, err := c.level(item.Children, path)
	if err != nil {
		return nil, err
	}

	if layout != Tabbed && !hasGroup(item.Children) {
		children = []*Node{NewContainer(Tabbed, 1, children...)}
	}
	return NewContainer(layout, percent, children...), nil
}

func hasGroup(spec PaneSpec) bool {
	for _, e := range spec {
		if e.Item.Kind == KindGroup {
			return true
		}
	}
	return false
}

func paneName(title string) string {
	return "  " + title + " "
}

func staticSwallows(targets map[string]string) []Swallow {
	swallows := make([]Swallow, 0, len(targets))
	for _, kind := range sortedKinds(targets) {
		swallows = append(swallows, Swallow{Kind: kind, Pattern: targets[kind]})
	}
	return swallows
}

func sortedKinds(targets map[string]string) []string {
	kinds := make([]string, 0, len(targets))
	for kind := range targets {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
