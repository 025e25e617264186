package client

import (
	"context"
	"time"

	"github.com/projecteru2/core/log"

	"github.com/projecteru2/vcmmd/types"
)

// DefaultPollInterval is used by WaitForState when interval <= 0.
const DefaultPollInterval = 500 * time.Millisecond

// WaitForState polls GetVEState until name reaches want, a query fails, or
// ctx is done. Use it when another process drives the VE, e.g. to wait for
// a hypervisor hook to activate a VM.
func (c *Client) WaitForState(ctx context.Context, name string, want types.VEState, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := log.WithFunc("client.WaitForState")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		st, err := c.GetVEState(ctx, name)
		if err != nil {
			return err
		}
		if st == want {
			return nil
		}
		logger.Debugf(ctx, "VE %s is %s, waiting for %s", name, st, want)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
