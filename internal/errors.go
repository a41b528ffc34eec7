package internal

import (
	"net/http"

	"github.com/pkg/errors"
)

// ErrorKind classifies an error by the way the user-facing layer has to react on it
type ErrorKind int

const (
	// KindServerFault is an unexpected failure - the default for every error not carrying a kind
	KindServerFault ErrorKind = iota
	// KindNotFound is returned when the requested entity does not exist
	KindNotFound
	// KindConstraintViolation is returned when a write is malformed or references entities that do not exist
	KindConstraintViolation
)

// String implements fmt.Stringer
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConstraintViolation:
		return "constraint violation"
	default:
		return "server fault"
	}
}

// Status returns the HTTP status matching the error kind
func (k ErrorKind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConstraintViolation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

const (
	// ErrCodeUnknown is the error code for unknown errors
	ErrCodeUnknown = "UNKNOWN_ERROR"
	// ErrCodeRepoError is returned when the request to a repo fails with an error
	ErrCodeRepoError = "STORAGE_QUERY_FAILED"
	// ErrCodeRequiredFieldMissing is returned when at least one required field has not been populated on an incoming
	// request
	ErrCodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	// ErrCodeIllegalValue is returned when any field in the transferred data does not validate for some reason
	ErrCodeIllegalValue = "ILLEGAL_VALUE"
	// ErrCodeVenueNotFound is returned when an operation works on a venue that does not exist
	ErrCodeVenueNotFound = "VENUE_NOT_FOUND"
	// ErrCodeArtistNotFound is returned when an operation works on an artist that does not exist
	ErrCodeArtistNotFound = "ARTIST_NOT_FOUND"
	// ErrCodeUnknownReference is returned when a show references a venue or artist that does not exist
	ErrCodeUnknownReference = "UNKNOWN_REFERENCE"
	// ErrCodePageNotFound is returned for paths no route exists for
	ErrCodePageNotFound = "PAGE_NOT_FOUND"
)

// Error is an error returned by the services. Its kind decides how the error is presented to the user while the
// cause is only meant for the log
type Error struct {
	kind    ErrorKind
	code    string
	message string
	data    interface{}
	cause   error
}

// MakeError creates a new Error with the given contents
func MakeError(kind ErrorKind, code, message string) *Error {
	return &Error{kind: kind, code: code, message: message}
}

// MakeErrorWithData creates a new Error with the given contents and an additional data element
func MakeErrorWithData(kind ErrorKind, code, message string, data interface{}) *Error {
	return &Error{kind: kind, code: code, message: message, data: data}
}

// MakeErrorWithCause creates a new Error wrapping the error that caused it
func MakeErrorWithCause(kind ErrorKind, code, message string, cause error) *Error {
	return &Error{kind: kind, code: code, message: message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Message returns the message without the cause - safe to show to the user
func (e *Error) Message() string {
	return e.message
}

// Kind returns the error kind
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Status returns the HTTP status that should be returned
func (e *Error) Status() int {
	return e.kind.Status()
}

// ErrorCode returns the machine-readable error code
func (e *Error) ErrorCode() string {
	return e.code
}

// Data returns additional data about the error
func (e *Error) Data() interface{} {
	return e.data
}

// Cause returns the underlying error. It implements the causer interface of github.com/pkg/errors
func (e *Error) Cause() error {
	return e.cause
}

// KindOf returns the kind of the given error. Errors not created by this package are server faults
func KindOf(err error) ErrorKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.kind
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return KindServerFault
}

// repoError wraps a failed repository call into a server fault
func repoError(message string, err error) *Error {
	return MakeErrorWithCause(KindServerFault, ErrCodeRepoError, message, errors.WithStack(err))
}
