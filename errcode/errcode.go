// Package errcode holds the VCMMD error taxonomy. The numeric values are a
// stable contract shared with the daemon and with callers: service errors
// start at 1, library errors at 1000, 0 is success.
package errcode

import (
	"errors"
	"fmt"
)

// Code is a VCMMD status code.
type Code int32

const Success Code = 0

// Errors returned by the VCMMD service.
const (
	InvalidVEName      Code = iota + 1 // 1
	InvalidVEType                      // 2
	InvalidVEConfig                    // 3
	VENameAlreadyInUse                 // 4
	VENotRegistered                    // 5
	VEAlreadyActive                    // 6
	VEOperationFailed                  // 7
	NoSpace                            // 8
	VENotActive                        // 9
	TooManyRequests                    // 10

	serviceErrorEnd
)

// Library errors.
const (
	NoMemory         Code = iota + 1000 // 1000
	ConnectionFailed                    // 1001

	libErrorEnd
)

var serviceErrors = [...]string{
	InvalidVEName - 1:      "Invalid VE name",
	InvalidVEType - 1:      "Invalid VE type",
	InvalidVEConfig - 1:    "Conflicting VE config parameters",
	VENameAlreadyInUse - 1: "VE name already in use",
	VENotRegistered - 1:    "VE not registered",
	VEAlreadyActive - 1:    "VE already active",
	VEOperationFailed - 1:  "VE operation failed",
	NoSpace - 1:            "Unable to meet VE requirements",
	VENotActive - 1:        "VE not active",
	TooManyRequests - 1:    "Too many requests, try again later",
}

var libErrors = [...]string{
	NoMemory - 1000:         "Failed to allocate memory",
	ConnectionFailed - 1000: "Failed to connect to VCMMD service",
}

// String returns the fixed description of c.
func (c Code) String() string {
	switch {
	case c == Success:
		return "Success"
	case c >= InvalidVEName && c < serviceErrorEnd:
		return serviceErrors[c-InvalidVEName]
	case c >= NoMemory && c < libErrorEnd:
		return libErrors[c-NoMemory]
	default:
		return "Unknown error"
	}
}

// Strerror describes any integer code, including ones outside both ranges.
func Strerror(code int) string {
	if code < -1<<31 || code > 1<<31-1 {
		return "Unknown error"
	}
	return Code(code).String() //nolint:gosec
}

// IsService reports whether c is in the daemon-defined range.
func (c Code) IsService() bool { return c >= InvalidVEName && c < serviceErrorEnd }

// IsLibrary reports whether c is in the local library range.
func (c Code) IsLibrary() bool { return c >= NoMemory && c < libErrorEnd }

// Error carries a non-zero Code and, for library errors, the local cause.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Code, so the sentinels below work
// with errors.Is regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidVEName      = &Error{Code: InvalidVEName}
	ErrInvalidVEType      = &Error{Code: InvalidVEType}
	ErrInvalidVEConfig    = &Error{Code: InvalidVEConfig}
	ErrVENameAlreadyInUse = &Error{Code: VENameAlreadyInUse}
	ErrVENotRegistered    = &Error{Code: VENotRegistered}
	ErrVEAlreadyActive    = &Error{Code: VEAlreadyActive}
	ErrVEOperationFailed  = &Error{Code: VEOperationFailed}
	ErrNoSpace            = &Error{Code: NoSpace}
	ErrVENotActive        = &Error{Code: VENotActive}
	ErrTooManyRequests    = &Error{Code: TooManyRequests}
	ErrNoMemory           = &Error{Code: NoMemory}
	ErrConnectionFailed   = &Error{Code: ConnectionFailed}
)

// FromStatus turns a daemon status into an error; 0 yields nil.
// Unknown codes are passed through unmodified.
func FromStatus(status int32) error {
	if status == 0 {
		return nil
	}
	return &Error{Code: Code(status)}
}

// Wrap returns a library error with code c caused by err.
func Wrap(c Code, err error) error {
	return &Error{Code: c, Err: err}
}

// CodeOf extracts the Code carried by err: Success for nil, and
// ConnectionFailed for errors that carry no code at all.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ConnectionFailed
}
