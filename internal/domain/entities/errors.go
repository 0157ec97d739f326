package entities

import (
	"errors"
	"fmt"
)

// Field names carried by ValidationError. Other tooling matches on them.
const (
	FieldOrg         = "org"
	FieldRepo        = "repo"
	FieldRef         = "ref"
	FieldSrcPath     = "srcPath"
	FieldDestPath    = "destPath"
	FieldPermissions = "permissions"
)

// UnknownErrorMessage is reported for failures outside the known error kinds.
const UnknownErrorMessage = "An unknown error occurred"

type (
	// ValidationError reports a spec field that failed its format check.
	ValidationError struct {
		Field   string
		Message string
	}

	// TransportError reports a failed HTTP exchange: either a non-200 status
	// (StatusCode set) or a connection level failure (Err set).
	TransportError struct {
		URL        string
		StatusCode int
		Err        error
	}

	// FilesystemError reports a failure to resolve, create, write or chmod a
	// destination file.
	FilesystemError struct {
		Op   string
		Path string
		Err  error
	}
)

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Failed to download file %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("Failed to download file: %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// FailureMessage returns the single message surfaced for a failed run.
// Errors outside the known kinds collapse into UnknownErrorMessage.
func FailureMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Error()
	}

	var filesystemErr *FilesystemError
	if errors.As(err, &filesystemErr) {
		return filesystemErr.Error()
	}

	return UnknownErrorMessage
}
