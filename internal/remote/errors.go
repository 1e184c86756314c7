package remote

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed set of remote failure classes the reconciler
// distinguishes. Transport specific codes are mapped into these at the
// adapter boundary.
type ErrorCode int

const (
	// CodeUnknown is any failure without special handling.
	CodeUnknown ErrorCode = iota

	// CodeDuplicateContent means the submitted content already exists as a version.
	CodeDuplicateContent

	// CodeResourceNotFound means the document id is not known to the service.
	CodeResourceNotFound

	// CodeInvalidDocument means the named document does not exist or cannot be used.
	CodeInvalidDocument
)

// String returns a readable name for the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeDuplicateContent:
		return "DuplicateContent"
	case CodeResourceNotFound:
		return "ResourceNotFound"
	case CodeInvalidDocument:
		return "InvalidDocument"
	default:
		return "Unknown"
	}
}

// Error is a failed remote operation.
type Error struct {
	// Op is the operation that failed (e.g. "UpdateDocument").
	Op string

	// Name is the document the operation targeted.
	Name string

	// Code is the classified failure.
	Code ErrorCode

	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s failed (%s)", e.Op, e.Name, e.Code)
	}
	return fmt.Sprintf("%s %s failed (%s): %v", e.Op, e.Name, e.Code, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a remote error.
func NewError(op, name string, code ErrorCode, err error) *Error {
	return &Error{Op: op, Name: name, Code: code, Err: err}
}

// CodeOf returns the classified code of err, or CodeUnknown when err does not
// wrap a *Error.
func CodeOf(err error) ErrorCode {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return CodeUnknown
}

// IsRemoteError reports whether err is or wraps a *Error.
func IsRemoteError(err error) bool {
	var re *Error
	return errors.As(err, &re)
}

// IsDuplicateContent reports whether err means the content already exists.
func IsDuplicateContent(err error) bool {
	return CodeOf(err) == CodeDuplicateContent
}

// IsResourceGone reports whether err means the document no longer exists,
// which is how an out-of-band deletion surfaces.
func IsResourceGone(err error) bool {
	switch CodeOf(err) {
	case CodeResourceNotFound, CodeInvalidDocument:
		return true
	default:
		return false
	}
}
