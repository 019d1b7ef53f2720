// Package project loads neutron.yml project files and finds them on disk.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neutron-wm/neutron/internal/errors"
	"github.com/neutron-wm/neutron/internal/layout"
)

// FileName is the project file every project directory contains.
const FileName = "neutron.yml"

// IgnoreFileName hides a project directory from discovery.
const IgnoreFileName = ".neutronignore"

// Top-level keys of a project file.
const (
	keyNetwork   = "network"
	keyEditor    = "sublime_project"
	keyWorkspace = "i3_workspace"
)

// Project is a parsed neutron.yml. A nil section means the matching
// capability is not registered.
type Project struct {
	// File is the absolute path of the project file.
	File string

	Network *Network
	Editor  []Folder
	Panes   layout.PaneSpec
}

// Network is the network section of a project file.
type Network struct {
	// VPN names the connection to switch to. Empty means the configured
	// default connection.
	VPN string
}

// Folder is one entry of the editor workspace.
type Folder struct {
	Name    string
	Path    string
	Exclude []string
}

// Dir returns the project directory.
func (p *Project) Dir() string { return filepath.Dir(p.File) }

// Namespace returns the project's name, the base name of its directory.
func (p *Project) Namespace() string { return filepath.Base(p.Dir()) }

// Load reads and parses the project file at path.
func Load(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("project", abs).WithCause(err)
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	return Parse(data, abs)
}

// Parse parses project file content. file is the absolute path the content
// came from; relative paths in the file resolve against its directory.
func Parse(data []byte, file string) (*Project, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewSpecError("project file is not valid YAML").WithCause(err)
	}

	p := &Project{File: file}
	if len(doc.Content) == 0 {
		return p, nil
	}

	root := layout.Resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, errors.NewSpecError("project file must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		var err error
		switch key {
		case keyNetwork:
			p.Network, err = parseNetwork(value)
		case keyEditor:
			if !isNull(value) {
				p.Editor, err = parseFolders(value, p.Dir(), p.Namespace())
			}
		case keyWorkspace:
			if !isNull(value) {
				p.Panes, err = layout.Parse(value)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

func parseNetwork(value *yaml.Node) (*Network, error) {
	n := &Network{}
	if isNull(value) {
		return n, nil
	}
	if value.Kind != yaml.MappingNode {
		return nil, errors.NewSpecError("network must be a mapping").WithPath(keyNetwork)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value != "vpn" {
			continue
		}
		vpn := value.Content[i+1]
		if isNull(vpn) || vpn.Kind != yaml.ScalarNode {
			continue
		}
		var enabled bool
		if vpn.Tag == "!!bool" && vpn.Decode(&enabled) == nil && !enabled {
			continue
		}
		n.VPN = vpn.Value
	}
	return n, nil
}

func parseFolders(value *yaml.Node, dir, namespace string) ([]Folder, error) {
	if value.Kind != yaml.MappingNode {
		return nil, errors.NewSpecError("sublime_project must be a mapping of folder name to path").WithPath(keyEditor)
	}

	folders := make([]Folder, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		label, options := value.Content[i].Value, value.Content[i+1]
		if strings.EqualFold(label, "%project%") {
			label = namespace
		}

		folder := Folder{Name: label}
		var rel string
		switch options.Kind {
		case yaml.ScalarNode:
			rel = options.Value
		case yaml.MappingNode:
			var opts struct {
				Path    string   `yaml:"path"`
				Exclude []string `yaml:"exclude"`
			}
			if err := options.Decode(&opts); err != nil {
				return nil, errors.NewSpecError("invalid folder options").WithPath(keyEditor, label).WithCause(err)
			}
			rel = opts.Path
			if len(opts.Exclude) > 0 {
				folder.Exclude = opts.Exclude
			}
		default:
			return nil, errors.NewSpecError("folder must be a path or a mapping with a path").WithPath(keyEditor, label)
		}

		if rel == "" {
			return nil, errors.NewSpecError("folder is missing a path").WithPath(keyEditor, label)
		}
		abs, err := filepath.Abs(filepath.Join(dir, rel))
		if err != nil {
			return nil, errors.NewSpecError("folder path cannot be resolved").WithPath(keyEditor, label).WithCause(err)
		}
		folder.Path = abs
		folders = append(folders, folder)
	}
	return folders, nil
}
