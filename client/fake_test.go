package client

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

type recordedCall struct {
	method string
	args   []any
}

// fakeBus answers calls from a per-method table and checks reply shapes
// the way a real bus does when storing a reply body.
type fakeBus struct {
	mu      sync.Mutex
	calls   []recordedCall
	replies map[string][]any
	err     error
}

func newFakeBus() *fakeBus {
	return &fakeBus{replies: map[string][]any{}}
}

func (f *fakeBus) reply(method string, body ...any) *fakeBus {
	f.replies[method] = body
	return f
}

func (f *fakeBus) Call(ctx context.Context, method string, args []any, reply ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.err != nil {
		return f.err
	}
	body, ok := f.replies[method]
	if !ok {
		return fmt.Errorf("no such method %s", method)
	}
	if len(body) != len(reply) {
		return errors.New("mismatched reply length")
	}
	for i, v := range body {
		dst := reflect.ValueOf(reply[i])
		if dst.Kind() != reflect.Pointer || dst.Elem().Type() != reflect.TypeOf(v) {
			return fmt.Errorf("reply field %d: cannot store %T into %T", i, v, reply[i])
		}
		dst.Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func (f *fakeBus) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBus) last() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}
