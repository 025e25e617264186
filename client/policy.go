package client

import (
	"context"
	"fmt"
	"io"

	"github.com/projecteru2/vcmmd/errcode"
)

// GetCurrentPolicy returns the name of the load-management policy the
// daemon is running.
func (c *Client) GetCurrentPolicy(ctx context.Context) (string, error) {
	return c.getString(ctx, MethodGetCurrentPolicy)
}

// GetPolicyFromFile returns the policy named in the daemon's config file,
// which is the one it will run after a restart.
func (c *Client) GetPolicyFromFile(ctx context.Context) (string, error) {
	return c.getString(ctx, MethodGetPolicyFromFile)
}

// SetPolicy switches the daemon to the named policy.
func (c *Client) SetPolicy(ctx context.Context, name string) error {
	if err := checkString("policy name", name); err != nil {
		return err
	}
	return c.callStatus(ctx, MethodSwitchPolicy, []any{name})
}

// ReadCurrentPolicy copies the current policy name into buf and returns
// its length. If it does not fit, buf is left untouched and a NoMemory error
// wrapping io.ErrShortBuffer is returned; the name is never truncated.
func (c *Client) ReadCurrentPolicy(ctx context.Context, buf []byte) (int, error) {
	return c.readString(ctx, MethodGetCurrentPolicy, buf)
}

// ReadPolicyFromFile is ReadCurrentPolicy for GetPolicyFromFile.
func (c *Client) ReadPolicyFromFile(ctx context.Context, buf []byte) (int, error) {
	return c.readString(ctx, MethodGetPolicyFromFile, buf)
}

func (c *Client) getString(ctx context.Context, method string) (string, error) {
	var (
		status int32
		s      string
	)
	if err := c.call(ctx, method, nil, &status, &s); err != nil {
		return "", err
	}
	if err := errcode.FromStatus(status); err != nil {
		return "", err
	}
	return s, nil
}

func (c *Client) readString(ctx context.Context, method string, buf []byte) (int, error) {
	s, err := c.getString(ctx, method)
	if err != nil {
		return 0, err
	}
	if len(s) > len(buf) {
		return 0, errcode.Wrap(errcode.NoMemory,
			fmt.Errorf("%s: %d bytes into %d: %w", method, len(s), len(buf), io.ErrShortBuffer))
	}
	return copy(buf, s), nil
}
