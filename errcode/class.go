package errcode

import "errors"

// Class groups codes by what a caller should do about them.
type Class int

const (
	ClassNone       Class = iota // success
	ClassValidation              // fix the input
	ClassState                   // VE is in the wrong lifecycle state
	ClassResource                // daemon cannot satisfy the request now
	ClassTransport               // channel unavailable or reply malformed
	ClassLocal                   // request could not be built
	ClassUnknown
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassValidation:
		return "validation"
	case ClassState:
		return "state"
	case ClassResource:
		return "resource"
	case ClassTransport:
		return "transport"
	case ClassLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Class returns the class of c.
func (c Code) Class() Class {
	switch c {
	case Success:
		return ClassNone
	case InvalidVEName, InvalidVEType, InvalidVEConfig:
		return ClassValidation
	case VENameAlreadyInUse, VENotRegistered, VEAlreadyActive, VENotActive:
		return ClassState
	case VEOperationFailed, NoSpace, TooManyRequests:
		return ClassResource
	case ConnectionFailed:
		return ClassTransport
	case NoMemory:
		return ClassLocal
	default:
		return ClassUnknown
	}
}

// IsRetryable returns true for errors worth retrying as-is: transport
// failures and an overloaded daemon. The client itself never retries.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		// No code = connection-level failure.
		return true
	}
	return e.Code == ConnectionFailed || e.Code == TooManyRequests
}
