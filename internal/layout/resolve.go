package layout

import "gopkg.in/yaml.v3"

const mergeTag = "!!merge"

// Resolve returns a copy of node with every alias replaced by the node it
// refers to and every merge key ("<<") expanded into its mapping. Keys
// written in the mapping win over merged ones, and among several merged
// mappings the first listed wins. Merged keys come first, in the order the
// merge sources give them. node is not modified.
func Resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		out := *node
		out.Content = make([]*yaml.Node, len(node.Content))
		for i, c := range node.Content {
			out.Content[i] = Resolve(c)
		}
		return &out
	case yaml.MappingNode:
		return resolveMapping(node)
	}
	return node
}

func resolveMapping(node *yaml.Node) *yaml.Node {
	var sources, explicit []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], Resolve(node.Content[i+1])
		if key.Kind == yaml.ScalarNode && key.ShortTag() == mergeTag {
			sources = append(sources, mergeSources(value)...)
			continue
		}
		explicit = append(explicit, key, value)
	}

	out := *node
	out.Content = make([]*yaml.Node, 0, len(node.Content))

	// index maps a merged key to the position of its value in out.Content
	index := make(map[string]int)
	for i := len(sources) - 1; i >= 0; i-- {
		src := sources[i]
		for j := 0; j+1 < len(src.Content); j += 2 {
			key, value := src.Content[j], src.Content[j+1]
			if pos, ok := index[key.Value]; ok {
				out.Content[pos] = value
				continue
			}
			index[key.Value] = len(out.Content) + 1
			out.Content = append(out.Content, key, value)
		}
	}

	for i := 0; i+1 < len(explicit); i += 2 {
		key, value := explicit[i], explicit[i+1]
		if pos, ok := index[key.Value]; ok {
			out.Content[pos] = value
			delete(index, key.Value)
			continue
		}
		out.Content = append(out.Content, key, value)
	}
	return &out
}

// mergeSources returns the mappings a merge key's value names: a single
// mapping or a sequence of them. value is already resolved.
func mergeSources(value *yaml.Node) []*yaml.Node {
	switch value.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{value}
	case yaml.SequenceNode:
		var maps []*yaml.Node
		for _, c := range value.Content {
			if c.Kind == yaml.MappingNode {
				maps = append(maps, c)
			}
		}
		return maps
	}
	return nil
}
