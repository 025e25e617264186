package types

import (
	"fmt"
	"strings"
)

// VEType is fixed at registration and never changes afterwards.
// Values are part of the wire protocol (sent as uint16).
type VEType uint16

const (
	VECT        VEType = iota // container
	VEVM                      // virtual machine
	VEVMLinux                 // virtual machine, Linux guest
	VEVMWindows               // virtual machine, Windows guest
	VEServiceCT               // service container
)

var veTypeNames = [...]string{
	VECT:        "ct",
	VEVM:        "vm",
	VEVMLinux:   "vm-linux",
	VEVMWindows: "vm-windows",
	VEServiceCT: "service-ct",
}

func (t VEType) String() string {
	if int(t) < len(veTypeNames) {
		return veTypeNames[t]
	}
	return fmt.Sprintf("VEType(%d)", uint16(t))
}

// ParseVEType accepts the names printed by VEType.String.
func ParseVEType(s string) (VEType, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for i, name := range veTypeNames {
		if name == s {
			return VEType(i), nil //nolint:gosec
		}
	}
	return 0, fmt.Errorf("unknown VE type %q", s)
}

// VEState is the lifecycle state of a VE as seen by the daemon.
// The client only observes it; transitions are driven by daemon calls.
type VEState int

const (
	VEStateUnregistered VEState = iota // not known to the daemon
	VEStateRegistered                  // registered, not managed yet
	VEStateActive                      // registered and managed
)

func (s VEState) String() string {
	switch s {
	case VEStateUnregistered:
		return "unregistered"
	case VEStateRegistered:
		return "registered"
	case VEStateActive:
		return "active"
	default:
		return fmt.Sprintf("VEState(%d)", int(s))
	}
}

// Flags is the trailing scalar of RegisterVE, ActivateVE and UpdateVE.
type Flags uint32

// FlagForce asks the daemon to skip its feasibility check.
const FlagForce Flags = 1 << 0

// Values of the guarantee_type config key.
const (
	GuaranteeAuto      uint64 = 0 // daemon may lower the guarantee under pressure
	GuaranteePermanent uint64 = 1 // guarantee is never lowered
)
