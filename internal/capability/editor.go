package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/neutron-wm/neutron/internal/layout"
	"github.com/neutron-wm/neutron/internal/project"
)

// Workspace is the editor project file neutron generates.
type Workspace struct {
	Folders []WorkspaceFolder `json:"folders"`
}

// WorkspaceFolder is one folder of an editor project file.
type WorkspaceFolder struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Exclude []string `json:"folder_exclude_patterns,omitempty"`
}

// NewWorkspace converts project folders into an editor project.
func NewWorkspace(folders []project.Folder) Workspace {
	w := Workspace{Folders: make([]WorkspaceFolder, 0, len(folders))}
	for _, f := range folders {
		w.Folders = append(w.Folders, WorkspaceFolder{Name: f.Name, Path: f.Path, Exclude: f.Exclude})
	}
	return w
}

// ReadWorkspace reads an editor project file. Editor project files may
// carry comments and trailing commas.
func ReadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w Workspace
	if err := json.Unmarshal(jsonc.ToJSON(data), &w); err != nil {
		return nil, fmt.Errorf("failed to parse editor project %s: %w", path, err)
	}
	return &w, nil
}

// Editor writes the editor project file and opens the editor on it.
type Editor struct {
	NopPhases

	workspace Workspace
	deps      Deps
}

// NewEditor creates the editor workspace capability.
func NewEditor(folders []project.Folder, deps Deps) *Editor {
	return &Editor{workspace: NewWorkspace(folders), deps: deps}
}

func (e *Editor) Name() string { return "editor" }

// Workspace returns the editor project Prepare writes.
func (e *Editor) Workspace() Workspace { return e.workspace }

func (e *Editor) Prepare(ctx context.Context) error {
	path := e.deps.Settings.Session.EditorProjectFile
	data, err := json.MarshalIndent(e.workspace, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode editor project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write editor project: %w", err)
	}
	e.deps.Logger.Debug("editor project written", "path", path, "folders", len(e.workspace.Folders))
	return nil
}

func (e *Editor) Launch(ctx context.Context) error {
	if e.deps.Settings.Editor.Command == "" {
		return nil
	}
	command := fmt.Sprintf(e.deps.Settings.Editor.Command, e.deps.Settings.Session.EditorProjectFile)
	_, err := e.deps.Sink.Run(ctx, layout.Detached(command))
	return err
}
