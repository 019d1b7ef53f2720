package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteFragments writes one JSON object per top-level node of root, each
// followed by a blank line. This is the format i3's append_layout reads.
func WriteFragments(w io.Writer, root *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)

	for _, node := range root.Nodes {
		if err := enc.Encode(node.wire()); err != nil {
			return fmt.Errorf("failed to encode layout fragment: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("failed to write layout fragment: %w", err)
		}
	}
	return nil
}

// Fragments returns the fragments of root as a byte slice.
func Fragments(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteFragments(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFragments writes the fragments of root to path, replacing its content.
func SaveFragments(path string, root *Node) error {
	data, err := Fragments(root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}
