package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input (project name, identifiers, flags).
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates the template or metadata provider could not be reached.
	ErrConnectivity = errors.New("connectivity error")

	// ErrEnvironment indicates the host platform is not supported.
	ErrEnvironment = errors.New("environment mismatch")

	// ErrVersionInvalid indicates the requested template revision is not offered.
	ErrVersionInvalid = errors.New("template revision not offered")

	// ErrVersionUnknown indicates the revision could not be checked. Never fatal.
	ErrVersionUnknown = errors.New("template revision unknown")

	// ErrTargetExists indicates the project root already exists.
	ErrTargetExists = errors.New("target already exists")

	// ErrDirectoryCreate indicates a layout directory could not be created.
	ErrDirectoryCreate = errors.New("directory creation failed")

	// ErrDownload indicates the template archive download failed.
	ErrDownload = errors.New("download failed")

	// ErrExtraction indicates the template archive could not be extracted.
	ErrExtraction = errors.New("extraction failed")

	// ErrFileWrite indicates a generated file or descriptor could not be written.
	ErrFileWrite = errors.New("file write failed")

	// ErrPatch indicates the frontend script could not be rewritten.
	ErrPatch = errors.New("patch failed")

	// ErrDrift indicates an existing project differs from what would be generated.
	ErrDrift = errors.New("generated files drifted")
)
