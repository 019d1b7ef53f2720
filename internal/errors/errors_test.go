package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// SpecError Tests
// -----------------------------------------------------------------------------

func TestSpecError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SpecError
		want string
	}{
		{
			name: "without path",
			err:  NewSpecError("pane specification is empty"),
			want: "spec error: pane specification is empty",
		},
		{
			name: "with path",
			err:  NewSpecError("terminal is missing a path").WithPath("Root", "Shells", "Server"),
			want: "spec error [path=Root → Shells → Server]: terminal is missing a path",
		},
		{
			name: "with cause",
			err:  NewSpecError("height is not a number").WithPath("Root", "Top").WithCause(fmt.Errorf("strconv: bad")),
			want: "spec error [path=Root → Top]: height is not a number: strconv: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpecError_Is(t *testing.T) {
	err := fmt.Errorf("compile: %w", NewSpecError("bad").WithPath("Root"))

	if !errors.Is(err, ErrMalformedSpec) {
		t.Error("errors.Is(err, ErrMalformedSpec) = false, want true")
	}

	var specErr *SpecError
	if !errors.As(err, &specErr) {
		t.Fatal("errors.As(err, *SpecError) = false, want true")
	}
	if len(specErr.Path) != 1 || specErr.Path[0] != "Root" {
		t.Errorf("Path = %v, want [Root]", specErr.Path)
	}
	if errors.Is(err, ErrCommandFailed) {
		t.Error("SpecError should not match ErrCommandFailed")
	}
}

func TestSpecError_WithPathCopies(t *testing.T) {
	labels := []string{"Root", "A"}
	err := NewSpecError("bad").WithPath(labels...)
	labels[1] = "changed"

	if err.Path[1] != "A" {
		t.Errorf("Path[1] = %q, want %q (path must not alias caller slice)", err.Path[1], "A")
	}
}

// -----------------------------------------------------------------------------
// SessionError Tests
// -----------------------------------------------------------------------------

func TestNewSessionError(t *testing.T) {
	err := NewSessionError("failed to read active project", ErrMarkerRead)

	if err.message != "failed to read active project" {
		t.Errorf("message = %q, want %q", err.message, "failed to read active project")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
	if !errors.Is(err, ErrMarkerRead) {
		t.Error("errors.Is(err, ErrMarkerRead) = false, want true")
	}
}

func TestSessionError_WithMethods(t *testing.T) {
	err := NewSessionError("test", ErrMarkerRead).
		WithProject("/home/me/Sites/acme/shop/neutron.yml").
		WithSeverity(SeverityWarning)

	if err.Project != "/home/me/Sites/acme/shop/neutron.yml" {
		t.Errorf("Project = %q", err.Project)
	}
	if GetSeverity(err) != SeverityWarning {
		t.Errorf("GetSeverity() = %v, want %v", GetSeverity(err), SeverityWarning)
	}

	want := "session error [project=/home/me/Sites/acme/shop/neutron.yml]: test: active project could not be read"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// -----------------------------------------------------------------------------
// GatewayError Tests
// -----------------------------------------------------------------------------

func TestGatewayError(t *testing.T) {
	cause := errors.New("exit status 2")
	err := NewGatewayError("command exited non-zero", cause).
		WithCommand("i3-msg 'workspace 3'").
		WithExitCode(2).
		WithOutput("ERROR: no such workspace\n")

	if !errors.Is(err, ErrCommandFailed) {
		t.Error("errors.Is(err, ErrCommandFailed) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	got := err.Error()
	for _, want := range []string{`command="i3-msg 'workspace 3'"`, "exit=2", "ERROR: no such workspace"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, want it to contain %q", got, want)
		}
	}
}

// -----------------------------------------------------------------------------
// Semantic Error Tests
// -----------------------------------------------------------------------------

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("project", "/tmp/nowhere")

	if got, want := err.Error(), "project not found: /tmp/nowhere"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrProjectNotFound) {
		t.Error("project NotFoundError should match ErrProjectNotFound")
	}
	if errors.Is(NewNotFoundError("settings file", "x"), ErrProjectNotFound) {
		t.Error("non-project NotFoundError should not match ErrProjectNotFound")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("workspace cannot be empty").WithField("i3.workspace").WithValue("")

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("errors.Is(err, ErrInvalidInput) = false, want true")
	}
	want := "validation error [field=i3.workspace, value=]: workspace cannot be empty"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"nil", nil, SeverityDebug},
		{"plain", errors.New("x"), SeverityError},
		{"validation", NewValidationError("x"), SeverityWarning},
		{"wrapped session warning", Wrap(NewSessionError("x", nil).WithSeverity(SeverityWarning), "quit"), SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true")
	}
	if IsUserFacing(errors.New("internal")) {
		t.Error("plain errors should not be user facing")
	}
	if !IsUserFacing(Wrap(NewSpecError("bad"), "compile")) {
		t.Error("wrapped SpecError should be user facing")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := errors.New("boom")
	err := Wrapf(base, "loading %s", "neutron.yml")
	if got, want := err.Error(), "loading neutron.yml: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to base")
	}
}
