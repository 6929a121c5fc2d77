// Package errors provides sentinel errors, structured diagnostics and exit
// codes for the bootstack CLI.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid input, an unsupported revision,
	// an unsupported host platform or detected drift.
	ExitValidationError = 2

	// ExitConnectivityError indicates the template provider could not be used.
	ExitConnectivityError = 3

	// ExitTargetExists indicates the project root already exists.
	ExitTargetExists = 4

	// ExitFilesystemError indicates a directory, extraction, write or patch failure.
	ExitFilesystemError = 5
)

// DetailError captures a structured diagnostic for a failed step.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Step names the pipeline step that failed (optional).
	Step string

	// Location is the path or parameter involved (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface. Output is stable for identical input.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Step != "" {
		b.WriteString("  Step: ")
		b.WriteString(e.Step)
		b.WriteString("\n")
	}
	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed reports whether the command layer already wrote the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEnvironment),
		errors.Is(err, ErrVersionInvalid),
		errors.Is(err, ErrDrift):
		return ExitValidationError
	case errors.Is(err, ErrConnectivity), errors.Is(err, ErrDownload):
		return ExitConnectivityError
	case errors.Is(err, ErrTargetExists):
		return ExitTargetExists
	case errors.Is(err, ErrDirectoryCreate),
		errors.Is(err, ErrExtraction),
		errors.Is(err, ErrFileWrite),
		errors.Is(err, ErrPatch):
		return ExitFilesystemError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConnectivityError:
		return "Connectivity Error"
	case ExitTargetExists:
		return "Target Exists"
	case ExitFilesystemError:
		return "Filesystem Error"
	default:
		return "Unknown"
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
