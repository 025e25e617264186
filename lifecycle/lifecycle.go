// Package lifecycle describes the VE state machine the daemon enforces:
//
//	Unregistered --Register--> Registered --Activate--> Active
//	Active --Deactivate--> Registered --Unregister--> Unregistered
//	Registered/Active --Update--> (unchanged)
//
// The daemon is the authority. This package lets callers predict the
// outcome of a call, interpret a rejection, and optionally refuse calls
// that are known to be illegal before they hit the bus.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/projecteru2/vcmmd/errcode"
	"github.com/projecteru2/vcmmd/types"
)

// Op is a state-changing daemon call.
type Op int

const (
	OpRegister Op = iota
	OpActivate
	OpUpdate
	OpDeactivate
	OpUnregister
)

func (o Op) String() string {
	switch o {
	case OpRegister:
		return "register"
	case OpActivate:
		return "activate"
	case OpUpdate:
		return "update"
	case OpDeactivate:
		return "deactivate"
	case OpUnregister:
		return "unregister"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Next returns the state a VE in state from reaches after op succeeds.
// An illegal transition yields the error the daemon answers with.
func Next(from types.VEState, op Op) (types.VEState, error) {
	switch op {
	case OpRegister:
		if from != types.VEStateUnregistered {
			return from, errcode.ErrVENameAlreadyInUse
		}
		return types.VEStateRegistered, nil
	case OpActivate:
		switch from {
		case types.VEStateUnregistered:
			return from, errcode.ErrVENotRegistered
		case types.VEStateActive:
			return from, errcode.ErrVEAlreadyActive
		}
		return types.VEStateActive, nil
	case OpUpdate:
		if from == types.VEStateUnregistered {
			return from, errcode.ErrVENotRegistered
		}
		return from, nil
	case OpDeactivate:
		switch from {
		case types.VEStateUnregistered:
			return from, errcode.ErrVENotRegistered
		case types.VEStateRegistered:
			return from, errcode.ErrVENotActive
		}
		return types.VEStateRegistered, nil
	case OpUnregister:
		if from == types.VEStateUnregistered {
			return from, errcode.ErrVENotRegistered
		}
		return types.VEStateUnregistered, nil
	default:
		return from, fmt.Errorf("unknown lifecycle op %s", op)
	}
}

// Observe infers the state of a VE from the outcome of op. ok is false
// when the outcome says nothing definite: transport failures, validation
// and resource errors, or a name already in use (Registered or Active).
//
// On success, a prior state is needed only for Update, which keeps it;
// pass known=false if it is not known.
func Observe(op Op, err error, prior types.VEState, known bool) (types.VEState, bool) {
	if err == nil {
		switch op {
		case OpRegister:
			return types.VEStateRegistered, true
		case OpActivate:
			return types.VEStateActive, true
		case OpDeactivate:
			return types.VEStateRegistered, true
		case OpUnregister:
			return types.VEStateUnregistered, true
		case OpUpdate:
			return prior, known
		}
		return prior, false
	}
	switch {
	case errors.Is(err, errcode.ErrVENotRegistered):
		return types.VEStateUnregistered, true
	case errors.Is(err, errcode.ErrVEAlreadyActive):
		return types.VEStateActive, true
	case errors.Is(err, errcode.ErrVENotActive):
		return types.VEStateRegistered, true
	}
	return prior, false
}
