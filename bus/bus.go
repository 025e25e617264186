package bus

import "context"

// Caller is a reliable point-to-point request/reply channel to the daemon.
// Call sends method with args in order and blocks until the reply arrives,
// the channel fails, or ctx is done. On success the reply body is stored
// into reply, which must be pointers matching the reply shape; a shape
// mismatch is an error like any other transport failure.
//
// Implementations must be safe for concurrent use and must not retry.
type Caller interface {
	Call(ctx context.Context, method string, args []any, reply ...any) error
}
