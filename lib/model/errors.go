package model

import "fmt"

// MissingDataError reports that upstream data is unavailable, malformed
// or not supported for the requested era. The reason is user-facing.
type MissingDataError struct {
	Reason string
	Cause  error
}

func (e *MissingDataError) Error() string {
	if e.Reason == "" {
		return "returned data missing or invalid, results could not be processed"
	}
	return e.Reason
}

func (e *MissingDataError) Unwrap() error {
	return e.Cause
}

func MissingData(reason string, cause error) *MissingDataError {
	return &MissingDataError{Reason: reason, Cause: cause}
}

// NormalizationError reports that a response document did not match the
// structure expected for its schema kind. It unwraps to MissingDataError
// semantics at the boundary via Cause.
type NormalizationError struct {
	Schema string
	Path   string
	Cause  error
}

func (e *NormalizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("normalize %s: %s: %v", e.Schema, e.Path, e.Cause)
	}
	return fmt.Sprintf("normalize %s: %s", e.Schema, e.Path)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// DriverNotFoundError reports that a user-supplied identifier did not
// resolve against the known driver set.
type DriverNotFoundError struct {
	Identifier string
}

func (e *DriverNotFoundError) Error() string {
	return fmt.Sprintf("driver %q could not be found", e.Identifier)
}
