package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/neutron-wm/neutron/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The settings field path (e.g., "i3.workspace")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidTargetKinds returns the i3 swallow criteria neutron may emit
func ValidTargetKinds() []string {
	return []string{"class", "instance", "title", "window_role", "window_type", "machine"}
}

// Validate checks Settings for invalid values and returns all validation errors found
func (c *Settings) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateI3()...)
	errors = append(errors, c.validateTargets("terminal.targets", c.Terminal.Targets)...)
	errors = append(errors, c.validateTargets("browser.targets", c.Browser.Targets)...)
	errors = append(errors, c.validateTargets("editor.targets", c.Editor.Targets)...)
	errors = append(errors, c.validateTemplates()...)
	errors = append(errors, c.validateSession()...)
	errors = append(errors, c.validateDelays()...)
	errors = append(errors, c.validateLogging()...)

	if strings.TrimSpace(c.Shell) == "" {
		errors = append(errors, ValidationError{
			Field:   "shell",
			Value:   c.Shell,
			Message: "cannot be empty",
		})
	}

	return errors
}

func (c *Settings) validateI3() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.I3.Workspace) == "" {
		errors = append(errors, ValidationError{
			Field:   "i3.workspace",
			Value:   c.I3.Workspace,
			Message: "cannot be empty",
		})
	}
	if strings.ContainsAny(c.I3.Workspace, "';") {
		errors = append(errors, ValidationError{
			Field:   "i3.workspace",
			Value:   c.I3.Workspace,
			Message: "cannot contain quotes or semicolons",
		})
	}
	if strings.TrimSpace(c.I3.NeutralWorkspace) == "" {
		errors = append(errors, ValidationError{
			Field:   "i3.neutral_workspace",
			Value:   c.I3.NeutralWorkspace,
			Message: "cannot be empty",
		})
	}
	if c.I3.BorderWidth < 0 {
		errors = append(errors, ValidationError{
			Field:   "i3.border_width",
			Value:   c.I3.BorderWidth,
			Message: "must be non-negative",
		})
	}
	if c.I3.FocusParentDepth < 1 {
		errors = append(errors, ValidationError{
			Field:   "i3.focus_parent_depth",
			Value:   c.I3.FocusParentDepth,
			Message: "must be at least 1",
		})
	}
	if strings.TrimSpace(c.I3.MsgCommand) == "" {
		errors = append(errors, ValidationError{
			Field:   "i3.msg_command",
			Value:   c.I3.MsgCommand,
			Message: "cannot be empty",
		})
	}

	return errors
}

func (c *Settings) validateTargets(field string, targets map[string]string) []ValidationError {
	var errors []ValidationError

	kinds := make([]string, 0, len(targets))
	for kind := range targets {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		if !slices.Contains(ValidTargetKinds(), kind) {
			errors = append(errors, ValidationError{
				Field:   field + "." + kind,
				Value:   kind,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidTargetKinds(), ", ")),
			})
		}
		if targets[kind] == "" {
			errors = append(errors, ValidationError{
				Field:   field + "." + kind,
				Value:   targets[kind],
				Message: "pattern cannot be empty",
			})
		}
	}

	return errors
}

func (c *Settings) validateTemplates() []ValidationError {
	var errors []ValidationError

	if n := strings.Count(c.Terminal.Command, "%s"); n != 3 {
		errors = append(errors, ValidationError{
			Field:   "terminal.command",
			Value:   c.Terminal.Command,
			Message: fmt.Sprintf("must contain exactly three %%s (title, class, directory), found %d", n),
		})
	}
	if c.Editor.Command != "" && strings.Count(c.Editor.Command, "%s") != 1 {
		errors = append(errors, ValidationError{
			Field:   "editor.command",
			Value:   c.Editor.Command,
			Message: "must contain exactly one %s for the project file",
		})
	}
	if c.Network.Connect != "" && strings.Count(c.Network.Connect, "%s") != 1 {
		errors = append(errors, ValidationError{
			Field:   "network.connect",
			Value:   c.Network.Connect,
			Message: "must contain exactly one %s for the connection name",
		})
	}
	if c.Launcher.Command != "" && strings.Count(c.Launcher.Command, "%s") != 1 {
		errors = append(errors, ValidationError{
			Field:   "launcher.command",
			Value:   c.Launcher.Command,
			Message: "must contain exactly one %s for the project list",
		})
	}

	return errors
}

func (c *Settings) validateSession() []ValidationError {
	var errors []ValidationError

	files := []struct {
		field string
		value string
	}{
		{"session.marker_file", c.Session.MarkerFile},
		{"session.lock_file", c.Session.LockFile},
		{"session.layout_file", c.Session.LayoutFile},
		{"session.editor_project_file", c.Session.EditorProjectFile},
	}
	for _, f := range files {
		if strings.TrimSpace(f.value) == "" {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Value:   f.value,
				Message: "cannot be empty",
			})
		}
	}

	if c.Session.MarkerFile != "" && c.Session.MarkerFile == c.Session.LockFile {
		errors = append(errors, ValidationError{
			Field:   "session.lock_file",
			Value:   c.Session.LockFile,
			Message: "must differ from session.marker_file",
		})
	}

	return errors
}

func (c *Settings) validateDelays() []ValidationError {
	var errors []ValidationError

	const maxDelayMs = 60_000
	delays := []struct {
		field string
		value int
	}{
		{"delays.command_ms", c.Delays.CommandMs},
		{"delays.hook_ms", c.Delays.HookMs},
		{"delays.phase_ms", c.Delays.PhaseMs},
		{"delays.relaunch_ms", c.Delays.RelaunchMs},
	}
	for _, d := range delays {
		if d.value < 0 {
			errors = append(errors, ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: "must be non-negative",
			})
		}
		if d.value > maxDelayMs {
			errors = append(errors, ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: fmt.Sprintf("exceeds maximum of %dms", maxDelayMs),
			})
		}
	}

	return errors
}

func (c *Settings) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.ToLower(strings.Join(logging.ValidLevels(), ", "))),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
