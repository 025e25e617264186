package dbus

import (
	"context"
	"fmt"
	"sync"

	godbus "github.com/godbus/dbus/v5"
	"github.com/projecteru2/core/log"

	"github.com/projecteru2/vcmmd/bus"
	"github.com/projecteru2/vcmmd/config"
)

// Fixed destination of every call.
const (
	ServiceName   = "com.virtuozzo.vcmmd"
	ObjectPath    = "/LoadManager"
	InterfaceName = "com.virtuozzo.vcmmd.LoadManager"
)

// compile-time interface check.
var _ bus.Caller = (*Conn)(nil)

// Conn is a bus.Caller backed by a D-Bus connection.
//
// The connection is opened on first use, under a mutex, so concurrent first
// calls share one connection and nothing happens at import time. A failed
// connect is not remembered: the next call tries again.
type Conn struct {
	dial func() (*godbus.Conn, error)

	mu   sync.Mutex
	conn *godbus.Conn
}

// New returns a Conn for the bus selected by conf. No connection is made.
func New(conf *config.Config) (*Conn, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &Conn{dial: dialer(conf)}, nil
}

func dialer(conf *config.Config) func() (*godbus.Conn, error) {
	switch {
	case conf.Address != "":
		addr := conf.Address
		return func() (*godbus.Conn, error) {
			conn, err := godbus.Connect(addr)
			if err != nil {
				return nil, fmt.Errorf("connect %s: %w", addr, err)
			}
			return conn, nil
		}
	case conf.Bus == config.BusSession:
		return func() (*godbus.Conn, error) { return godbus.ConnectSessionBus() }
	default:
		return func() (*godbus.Conn, error) { return godbus.ConnectSystemBus() }
	}
}

// Call implements bus.Caller. ctx is the only bound on how long it blocks.
func (c *Conn) Call(ctx context.Context, method string, args []any, reply ...any) error {
	conn, err := c.ensure(ctx)
	if err != nil {
		return err
	}
	obj := conn.Object(ServiceName, ObjectPath)
	call := obj.CallWithContext(ctx, InterfaceName+"."+method, 0, args...)
	if call.Err != nil {
		return fmt.Errorf("call %s: %w", method, call.Err)
	}
	if err := call.Store(reply...); err != nil {
		return fmt.Errorf("reply %s: %w", method, err)
	}
	return nil
}

// Close drops the connection; a later Call reconnects.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// ensure returns a connected bus, dialing it if needed.
func (c *Conn) ensure(ctx context.Context) (*godbus.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		if c.conn.Connected() {
			return c.conn, nil
		}
		_ = c.conn.Close()
		c.conn = nil
	}
	conn, err := c.dial()
	if err != nil {
		log.WithFunc("dbus.ensure").Warnf(ctx, "bus unavailable: %v", err)
		return nil, err
	}
	c.conn = conn
	return conn, nil
}
