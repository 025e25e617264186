package client

import (
	"context"

	"github.com/projecteru2/vcmmd/errcode"
	"github.com/projecteru2/vcmmd/lifecycle"
	"github.com/projecteru2/vcmmd/types"
	"github.com/projecteru2/vcmmd/veconfig"
	"github.com/projecteru2/vcmmd/wire"
)

// RegisterVE registers a VE with the daemon. Call it before the VE starts:
// the daemon checks whether it can meet the requirements in cfg and refuses
// with NoSpace if not, in which case the VE must not be started. A
// registered VE counts towards host load but is not tuned until
// ActivateVE. FlagForce skips the feasibility check.
//
// Errors: InvalidVEName, InvalidVEType, InvalidVEConfig,
// VENameAlreadyInUse, NoSpace.
func (c *Client) RegisterVE(ctx context.Context, name string, veType types.VEType, cfg *veconfig.Config, flags types.Flags) error {
	if err := checkString("VE name", name); err != nil {
		return err
	}
	entries, err := encodeConfig(cfg)
	if err != nil {
		return err
	}
	args := []any{name, uint16(veType), entries, uint32(flags)}
	return c.transition(ctx, lifecycle.OpRegister, name, MethodRegisterVE, args)
}

// ActivateVE tells the daemon a registered VE is running and may now be
// managed. It normally fails only if the daemon cannot attach to the VE; the
// caller should then stop the VE and unregister it.
//
// Errors: VENotRegistered, VEAlreadyActive, VEOperationFailed.
func (c *Client) ActivateVE(ctx context.Context, name string, flags types.Flags) error {
	if err := checkString("VE name", name); err != nil {
		return err
	}
	args := []any{name, uint32(flags)}
	return c.transition(ctx, lifecycle.OpActivate, name, MethodActivateVE, args)
}

// UpdateVE asks the daemon to apply a new config to a registered VE.
// Omitted keys keep their current values.
//
// Errors: InvalidVEConfig, VENotRegistered, VEOperationFailed, NoSpace.
func (c *Client) UpdateVE(ctx context.Context, name string, cfg *veconfig.Config, flags types.Flags) error {
	if err := checkString("VE name", name); err != nil {
		return err
	}
	entries, err := encodeConfig(cfg)
	if err != nil {
		return err
	}
	args := []any{name, entries, uint32(flags)}
	return c.transition(ctx, lifecycle.OpUpdate, name, MethodUpdateVE, args)
}

// DeactivateVE stops runtime tuning of an active VE, e.g. before pausing it.
// The VE stays registered. Undo with ActivateVE.
//
// Errors: VENotRegistered, VENotActive.
func (c *Client) DeactivateVE(ctx context.Context, name string) error {
	if err := checkString("VE name", name); err != nil {
		return err
	}
	return c.transition(ctx, lifecycle.OpDeactivate, name, MethodDeactivateVE, []any{name})
}

// UnregisterVE makes the daemon forget a VE. The caller stops the VE
// afterwards if it is running.
//
// Errors: VENotRegistered.
func (c *Client) UnregisterVE(ctx context.Context, name string) error {
	if err := checkString("VE name", name); err != nil {
		return err
	}
	return c.transition(ctx, lifecycle.OpUnregister, name, MethodUnregisterVE, []any{name})
}

// GetVEConfig returns the config the daemon holds for a VE. Keys this client
// does not know are dropped.
//
// Errors: VENotRegistered.
func (c *Client) GetVEConfig(ctx context.Context, name string) (*veconfig.Config, error) {
	if err := checkString("VE name", name); err != nil {
		return nil, err
	}
	var (
		status  int32
		entries []wire.Entry
	)
	if err := c.call(ctx, MethodGetVEConfig, []any{name}, &status, &entries); err != nil {
		return nil, err
	}
	return wire.DecodeConfig(ctx, status, entries)
}

// GetVEState returns the lifecycle state of a VE. A VE the daemon does not
// know is reported as VEStateUnregistered, not as an error.
func (c *Client) GetVEState(ctx context.Context, name string) (types.VEState, error) {
	if err := checkString("VE name", name); err != nil {
		return types.VEStateUnregistered, err
	}
	var (
		status int32
		active bool
	)
	if err := c.call(ctx, MethodIsVEActive, []any{name}, &status, &active); err != nil {
		return types.VEStateUnregistered, err
	}

	st := types.VEStateRegistered
	switch errcode.Code(status) {
	case errcode.Success:
		if active {
			st = types.VEStateActive
		}
	case errcode.VENotRegistered:
		st = types.VEStateUnregistered
	default:
		return types.VEStateUnregistered, errcode.FromStatus(status)
	}
	if c.guard != nil {
		c.guard.Set(name, st)
	}
	return st, nil
}
