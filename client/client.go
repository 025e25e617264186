// Package client is the synchronous VCMMD RPC client.
//
// Every method issues exactly one daemon call and blocks until the reply
// arrives. The client adds no timeout and never retries: bound a call by
// passing a context with a deadline, and consult errcode.IsRetryable to
// decide whether to try again.
package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/vcmmd/bus"
	"github.com/projecteru2/vcmmd/bus/dbus"
	"github.com/projecteru2/vcmmd/config"
	"github.com/projecteru2/vcmmd/errcode"
	"github.com/projecteru2/vcmmd/lifecycle"
)

// Daemon method names.
const (
	MethodRegisterVE        = "RegisterVE"
	MethodActivateVE        = "ActivateVE"
	MethodUpdateVE          = "UpdateVE"
	MethodDeactivateVE      = "DeactivateVE"
	MethodUnregisterVE      = "UnregisterVE"
	MethodGetVEConfig       = "GetVEConfig"
	MethodIsVEActive        = "IsVEActive"
	MethodGetCurrentPolicy  = "GetCurrentPolicy"
	MethodGetPolicyFromFile = "GetPolicyFromFile"
	MethodSwitchPolicy      = "SwitchPolicy"
)

// Client talks to the VCMMD daemon over a bus.Caller.
// It is safe for concurrent use when the Caller is.
type Client struct {
	bus   bus.Caller
	guard *lifecycle.Guard
}

// Option configures a Client.
type Option func(*Client)

// WithGuard makes the client consult and update g around every
// state-changing call, refusing calls known to be illegal without a round
// trip to the daemon.
func WithGuard(g *lifecycle.Guard) Option {
	return func(c *Client) { c.guard = g }
}

// New creates a Client on top of caller.
func New(caller bus.Caller, opts ...Option) *Client {
	c := &Client{bus: caller}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a Client on the D-Bus selected by conf.
// The bus is connected lazily on the first call.
func NewFromConfig(conf *config.Config, opts ...Option) (*Client, error) {
	conn, err := dbus.New(conf)
	if err != nil {
		return nil, fmt.Errorf("init bus: %w", err)
	}
	return New(conn, opts...), nil
}

var defaultClient = sync.OnceValues(func() (*Client, error) {
	return NewFromConfig(config.DefaultConfig())
})

// Default returns the process-wide client on the system bus.
func Default() (*Client, error) {
	return defaultClient()
}

// call performs one round trip. Any transport failure, including a reply of
// the wrong shape or a cancelled ctx, becomes ConnectionFailed.
func (c *Client) call(ctx context.Context, method string, args []any, reply ...any) error {
	logger := log.WithFunc("client." + method)
	logger.Debugf(ctx, "call %s", method)
	if err := c.bus.Call(ctx, method, args, reply...); err != nil {
		logger.Warnf(ctx, "%s failed: %v", method, err)
		return errcode.Wrap(errcode.ConnectionFailed, err)
	}
	return nil
}

// callStatus performs a call whose reply is a bare status.
func (c *Client) callStatus(ctx context.Context, method string, args []any) error {
	var status int32
	if err := c.call(ctx, method, args, &status); err != nil {
		return err
	}
	return errcode.FromStatus(status)
}

// transition wraps a state-changing call with the optional guard.
func (c *Client) transition(ctx context.Context, op lifecycle.Op, name, method string, args []any) error {
	if c.guard != nil {
		if err := c.guard.Check(name, op); err != nil {
			return fmt.Errorf("%s %s refused locally: %w", op, name, err)
		}
	}
	err := c.callStatus(ctx, method, args)
	if c.guard != nil {
		c.guard.Record(name, op, err)
	}
	return err
}
