// Package layout compiles a project's pane specification into an i3 layout
// tree and the shell commands that start the windows the tree expects.
//
// A pane specification is an ordered mapping of labels to items. Every item
// is classified once, structurally, into one of five kinds:
//
//   - Terminal: a mapping with terminal: true and a path
//   - Browser, Editor: the label "browser" or "editor" with the value true
//   - Group: a mapping with a non-empty nodes (or children) mapping
//   - Custom: anything else, compiled to an empty placeholder
//
// Groups become containers. A height hint gives a horizontal split and a
// width hint a vertical split; a group without a hint is tabbed. A split
// group whose label matches the last label of its level is tabbed instead,
// and a split group with no nested groups wraps its children in a single
// tabbed container.
//
// Compile is pure. Writing the fragments file and running the commands is
// the caller's business.
package layout
