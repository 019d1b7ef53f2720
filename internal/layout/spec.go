package layout

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neutron-wm/neutron/internal/errors"
)

// ItemKind is the structural classification of a pane item.
type ItemKind int

const (
	KindCustom ItemKind = iota
	KindTerminal
	KindBrowser
	KindEditor
	KindGroup
)

func (k ItemKind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindBrowser:
		return "browser"
	case KindEditor:
		return "editor"
	case KindGroup:
		return "group"
	default:
		return "custom"
	}
}

// Axis selects how a group splits its space.
type Axis int

const (
	AxisNone Axis = iota
	AxisHeight
	AxisWidth
)

// Sizing is a group's optional size hint.
type Sizing struct {
	Axis     Axis
	Fraction float64
}

// Height returns a height hint, compiled to a horizontal split.
func Height(f float64) Sizing { return Sizing{Axis: AxisHeight, Fraction: f} }

// Width returns a width hint, compiled to a vertical split.
func Width(f float64) Sizing { return Sizing{Axis: AxisWidth, Fraction: f} }

// Item is one classified entry of a PaneSpec. Which fields are meaningful
// depends on Kind.
type Item struct {
	Kind ItemKind

	// Terminal
	Path    string
	Command string
	Quit    []string

	// Group
	Sizing   Sizing
	Children PaneSpec
}

// Entry pairs a label with its item.
type Entry struct {
	Label string
	Item  Item
}

// PaneSpec is an ordered label to item mapping. Order is significant.
type PaneSpec []Entry

// Labels returns the labels of s in order.
func (s PaneSpec) Labels() []string {
	labels := make([]string, len(s))
	for i, e := range s {
		labels[i] = e.Label
	}
	return labels
}

// Helpers for building specs in code.

func Terminal(path string) Item { return Item{Kind: KindTerminal, Path: path} }

func Browser() Item { return Item{Kind: KindBrowser} }

func Editor() Item { return Item{Kind: KindEditor} }

func Custom() Item { return Item{Kind: KindCustom} }

func Group(sizing Sizing, children ...Entry) Item {
	return Item{Kind: KindGroup, Sizing: sizing, Children: children}
}

// childKeys are the mapping keys accepted for a group's children.
var childKeys = []string{"nodes", "children"}

// Classify decides the kind of the item labeled label with YAML value.
// Terminal is checked first, then Browser, Editor and Group; anything else
// is Custom. Aliases and merge keys in value are resolved first.
func Classify(label string, value *yaml.Node) ItemKind {
	value = Resolve(value)
	switch {
	case isTerminal(value):
		return KindTerminal
	case strings.EqualFold(label, "browser") && isTrue(value):
		return KindBrowser
	case strings.EqualFold(label, "editor") && isTrue(value):
		return KindEditor
	case children(value) != nil:
		return KindGroup
	default:
		return KindCustom
	}
}

func isTerminal(value *yaml.Node) bool {
	v := lookup(value, "terminal")
	return v != nil && isTrue(v)
}

func isTrue(value *yaml.Node) bool {
	if value == nil || value.Kind != yaml.ScalarNode {
		return false
	}
	var b bool
	if err := value.Decode(&b); err != nil {
		return false
	}
	return b
}

// children returns the non-empty children mapping of value, or nil.
func children(value *yaml.Node) *yaml.Node {
	for _, key := range childKeys {
		if v := lookup(value, key); v != nil && v.Kind == yaml.MappingNode && len(v.Content) > 0 {
			return v
		}
	}
	return nil
}

// lookup returns the value stored under key in a mapping node.
func lookup(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// Parse builds a PaneSpec from a YAML mapping node, classifying every item.
// A document node is unwrapped and aliases and merge keys are resolved.
// Structural problems are reported as *errors.SpecError carrying the label
// path.
func Parse(node *yaml.Node) (PaneSpec, error) {
	node = Resolve(node)
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	return parseLevel(node, []string{"Root"})
}

func parseLevel(node *yaml.Node, path []string) (PaneSpec, error) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, errors.NewSpecError("panes must be a mapping of label to item").WithPath(path...)
	}
	if len(node.Content) == 0 {
		return nil, errors.NewSpecError("pane specification is empty").WithPath(path...)
	}

	spec := make(PaneSpec, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		label := node.Content[i].Value
		itemPath := append(append([]string(nil), path...), label)
		if seen[label] {
			return nil, errors.NewSpecError("duplicate label").WithPath(itemPath...)
		}
		seen[label] = true

		item, err := parseItem(label, node.Content[i+1], itemPath)
		if err != nil {
			return nil, err
		}
		spec = append(spec, Entry{Label: label, Item: item})
	}
	return spec, nil
}

func parseItem(label string, value *yaml.Node, path []string) (Item, error) {
	kind := Classify(label, value)
	switch kind {
	case KindTerminal:
		return parseTerminal(value, path)
	case KindGroup:
		sizing, err := parseSizing(value, path)
		if err != nil {
			return Item{}, err
		}
		kids, err := parseLevel(children(value), path)
		if err != nil {
			return Item{}, err
		}
		return Item{Kind: KindGroup, Sizing: sizing, Children: kids}, nil
	case KindCustom:
		if lookup(value, "height") != nil || lookup(value, "width") != nil {
			return Item{}, errors.NewSpecError("sizing hint given without children").WithPath(path...)
		}
	}
	return Item{Kind: kind}, nil
}

func parseTerminal(value *yaml.Node, path []string) (Item, error) {
	item := Item{Kind: KindTerminal}

	p := lookup(value, "path")
	if p == nil || p.Kind != yaml.ScalarNode || p.Value == "" {
		return Item{}, errors.NewSpecError("terminal is missing a path").WithPath(path...)
	}
	item.Path = p.Value

	if c := lookup(value, "command"); c != nil && c.Kind == yaml.ScalarNode && c.Tag != "!!null" {
		item.Command = c.Value
	}

	if q := lookup(value, "quit"); q != nil && q.Tag != "!!null" {
		if q.Kind != yaml.SequenceNode {
			return Item{}, errors.NewSpecError("quit must be a list of commands").WithPath(path...)
		}
		for _, entry := range q.Content {
			if entry.Kind != yaml.ScalarNode {
				return Item{}, errors.NewSpecError("quit entries must be strings").WithPath(path...)
			}
			item.Quit = append(item.Quit, entry.Value)
		}
	}
	return item, nil
}

func parseSizing(value *yaml.Node, path []string) (Sizing, error) {
	// height wins when both are given
	for _, hint := range []struct {
		key  string
		axis Axis
	}{{"height", AxisHeight}, {"width", AxisWidth}} {
		v := lookup(value, hint.key)
		if v == nil {
			continue
		}
		var f float64
		if v.Kind != yaml.ScalarNode || v.Decode(&f) != nil {
			return Sizing{}, errors.NewSpecError(hint.key + " must be a number").WithPath(path...)
		}
		return Sizing{Axis: hint.axis, Fraction: f}, nil
	}
	return Sizing{}, nil
}
