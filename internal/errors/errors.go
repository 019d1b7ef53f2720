// Package errors provides centralized error definitions and error handling utilities
// for neutron. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - SpecError: a project's pane specification is malformed
//   - SessionError: errors related to the session marker and lock
//   - GatewayError: a submitted shell or window-manager command failed
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewSpecError("terminal is missing a path").WithPath("Root", "Shell")
//	err := errors.NewGatewayError("command exited non-zero", cause).WithCommand(cmd)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrMalformedSpec) { ... }
//
//	var specErr *errors.SpecError
//	if errors.As(err, &specErr) { ... }
//
// # Error Classification
//
// Errors can be classified by severity and behavior:
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Pane tree sentinel errors
var (
	// ErrMalformedSpec indicates that a pane specification violates its structural rules.
	ErrMalformedSpec = New("malformed pane specification")
	// ErrProjectNotFound indicates that a project file could not be found.
	ErrProjectNotFound = New("project not found")
)

// Session sentinel errors
var (
	// ErrNoActiveSession indicates that quit was requested with no session marker present.
	ErrNoActiveSession = New("no active session")
	// ErrMarkerRead indicates that the marker exists but the project it references is unreadable.
	ErrMarkerRead = New("active project could not be read")
	// ErrSessionLocked indicates that another neutron process holds the session lock.
	ErrSessionLocked = New("session is locked")
)

// Gateway sentinel errors
var (
	// ErrCommandFailed indicates that a submitted command exited unsuccessfully.
	ErrCommandFailed = New("command failed")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// NeutronError is the base interface for all neutron errors.
type NeutronError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "<kind> [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// SpecError reports a malformed pane specification. Path holds the chain of
// labels from the root level down to the offending item.
//
// Example:
//
//	err := errors.NewSpecError("terminal is missing a path").WithPath("Root", "Shells", "Server")
//	fmt.Println(err) // "spec error [path=Root → Shells → Server]: terminal is missing a path"
type SpecError struct {
	baseError
	Path []string
}

// NewSpecError creates a new SpecError.
func NewSpecError(message string) *SpecError {
	return &SpecError{
		baseError: baseError{
			message:    message,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath sets the label path of the offending item.
func (e *SpecError) WithPath(labels ...string) *SpecError {
	e.Path = append([]string(nil), labels...)
	return e
}

// WithCause adds a cause to the error.
func (e *SpecError) WithCause(cause error) *SpecError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *SpecError) Error() string {
	var parts []string
	if len(e.Path) > 0 {
		parts = append(parts, "path="+strings.Join(e.Path, " → "))
	}
	return e.format("spec error", parts)
}

// Is checks if this error matches the target.
func (e *SpecError) Is(target error) bool {
	if _, ok := target.(*SpecError); ok {
		return true
	}
	if target == ErrMalformedSpec {
		return true
	}
	return e.baseError.Is(target)
}

// SessionError represents errors related to the session marker and lock.
//
// Example:
//
//	err := errors.NewSessionError("failed to read active project", errors.ErrMarkerRead)
//	err = err.WithProject("/home/me/Sites/acme/shop/neutron.yml").WithSeverity(errors.SeverityWarning)
type SessionError struct {
	baseError
	Project string
}

// NewSessionError creates a new SessionError.
func NewSessionError(message string, cause error) *SessionError {
	return &SessionError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithProject adds the project file path to the error context.
func (e *SessionError) WithProject(path string) *SessionError {
	e.Project = path
	return e
}

// WithSeverity sets the error severity.
func (e *SessionError) WithSeverity(s Severity) *SessionError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *SessionError) Error() string {
	var parts []string
	if e.Project != "" {
		parts = append(parts, "project="+e.Project)
	}
	return e.format("session error", parts)
}

// Is checks if this error matches the target.
func (e *SessionError) Is(target error) bool {
	if _, ok := target.(*SessionError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// GatewayError represents a failed shell or window-manager command.
//
// Example:
//
//	err := errors.NewGatewayError("command exited non-zero", cause).
//	    WithCommand("i3-msg 'workspace 3'").WithExitCode(2)
type GatewayError struct {
	baseError
	Command  string
	Output   string
	ExitCode int
}

// NewGatewayError creates a new GatewayError.
func NewGatewayError(message string, cause error) *GatewayError {
	return &GatewayError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithCommand adds the submitted command to the error context.
func (e *GatewayError) WithCommand(command string) *GatewayError {
	e.Command = command
	return e
}

// WithOutput adds the captured command output to the error context.
func (e *GatewayError) WithOutput(output string) *GatewayError {
	e.Output = output
	return e
}

// WithExitCode adds the command's exit status to the error context.
func (e *GatewayError) WithExitCode(code int) *GatewayError {
	e.ExitCode = code
	return e
}

// Error returns the formatted error message.
func (e *GatewayError) Error() string {
	var parts []string
	if e.Command != "" {
		parts = append(parts, fmt.Sprintf("command=%q", e.Command))
	}
	if e.ExitCode != 0 {
		parts = append(parts, fmt.Sprintf("exit=%d", e.ExitCode))
	}
	msg := e.format("gateway error", parts)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

// Is checks if this error matches the target.
func (e *GatewayError) Is(target error) bool {
	if _, ok := target.(*GatewayError); ok {
		return true
	}
	if target == ErrCommandFailed {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("project", "/home/me/Sites/acme/shop")
//	fmt.Println(err) // "project not found: /home/me/Sites/acme/shop"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s not found", resourceType),
			severity:   SeverityError,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	msg := e.message
	if e.ResourceID != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.ResourceID)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if target == ErrProjectNotFound && e.ResourceType == "project" {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("workspace cannot be empty").WithField("i3.workspace")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause sets the underlying error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var neutronErr NeutronError
	if As(err, &neutronErr) {
		return neutronErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement NeutronError.
//
// Example:
//
//	if errors.GetSeverity(err) == errors.SeverityWarning {
//	    fmt.Fprintln(os.Stderr, "warning:", err)
//	    return nil
//	}
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var neutronErr NeutronError
	if As(err, &neutronErr) {
		return neutronErr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this returns nil for a nil error.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to write layout")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to load project %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
