package layout

// Layout is an i3 container layout.
type Layout string

const (
	SplitH Layout = "splith"
	SplitV Layout = "splitv"
	Tabbed Layout = "tabbed"
)

// Swallow is a single i3 window criterion: the first window matching
// Pattern on Kind is placed into the leaf.
type Swallow struct {
	Kind    string
	Pattern string
}

// Node is one element of a compiled layout tree. A Node with an empty
// Layout is a leaf (a window placeholder); otherwise it is a container
// holding Nodes.
type Node struct {
	Name        string
	Swallows    []Swallow
	BorderWidth int

	Layout  Layout
	Percent float64
	Nodes   []*Node
}

// IsLeaf reports whether n is a window placeholder.
func (n *Node) IsLeaf() bool { return n.Layout == "" }

// NewLeaf returns a window placeholder.
func NewLeaf(name string, borderWidth int, swallows ...Swallow) *Node {
	if swallows == nil {
		swallows = []Swallow{}
	}
	return &Node{Name: name, Swallows: swallows, BorderWidth: borderWidth, Percent: 1}
}

// NewContainer returns a container with the given layout and children.
func NewContainer(layout Layout, percent float64, nodes ...*Node) *Node {
	return &Node{Layout: layout, Percent: percent, Nodes: nodes}
}

type geometry struct {
	Height int `json:"height"`
	Width  int `json:"width"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// leafJSON and containerJSON fix the key order of append_layout fragments.
type leafJSON struct {
	Border             string              `json:"border"`
	CurrentBorderWidth int                 `json:"current_border_width"`
	Floating           string              `json:"floating"`
	Percent            float64             `json:"percent"`
	Type               string              `json:"type"`
	Swallows           []map[string]string `json:"swallows"`
	Geometry           geometry            `json:"geometry"`
	Name               string              `json:"name"`
}

type containerJSON struct {
	Border   string  `json:"border"`
	Floating string  `json:"floating"`
	Layout   Layout  `json:"layout"`
	Percent  float64 `json:"percent"`
	Type     string  `json:"type"`
	Nodes    []any   `json:"nodes"`
}

// wire converts n into the value encoded into a layout fragment.
func (n *Node) wire() any {
	if n.IsLeaf() {
		swallows := make([]map[string]string, len(n.Swallows))
		for i, s := range n.Swallows {
			swallows[i] = map[string]string{s.Kind: s.Pattern}
		}
		return leafJSON{
			Border:             "pixel",
			CurrentBorderWidth: n.BorderWidth,
			Floating:           "auto_off",
			Percent:            n.Percent,
			Type:               "con",
			Swallows:           swallows,
			Name:               n.Name,
		}
	}

	nodes := make([]any, len(n.Nodes))
	for i, child := range n.Nodes {
		nodes[i] = child.wire()
	}
	return containerJSON{
		Border:   "pixel",
		Floating: "auto_off",
		Layout:   n.Layout,
		Percent:  n.Percent,
		Type:     "con",
		Nodes:    nodes,
	}
}

// Leaves returns the leaves under n in depth-first sibling order.
func (n *Node) Leaves() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var leaves []*Node
	for _, child := range n.Nodes {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}
