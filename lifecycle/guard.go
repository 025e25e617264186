package lifecycle

import (
	"sync"

	"github.com/projecteru2/vcmmd/errcode"
	"github.com/projecteru2/vcmmd/types"
)

// Guard tracks the last observed state of each VE name and rejects calls
// that are illegal from a known state. Names it has never observed are
// let through; the daemon decides. A Guard is safe for concurrent use, but
// it does not serialize calls: ordering across goroutines is the caller's.
type Guard struct {
	mu     sync.Mutex
	states map[string]types.VEState
}

// NewGuard returns an empty Guard.
func NewGuard() *Guard {
	return &Guard{states: make(map[string]types.VEState)}
}

// Check returns the daemon error op would produce for name, or nil if op
// is legal or the state of name is unknown.
func (g *Guard) Check(name string, op Op) error {
	st, ok := g.State(name)
	if !ok {
		return nil
	}
	_, err := Next(st, op)
	return err
}

// Record updates the state of name from the outcome of op.
func (g *Guard) Record(name string, op Op, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	prior, known := g.states[name]
	if st, ok := Observe(op, err, prior, known); ok {
		g.states[name] = st
		return
	}
	switch errcode.CodeOf(err).Class() {
	case errcode.ClassTransport, errcode.ClassUnknown:
		// The call may or may not have been applied.
		delete(g.states, name)
	case errcode.ClassState:
		// Name in use: registered or active, but not unregistered.
		if known && prior == types.VEStateUnregistered {
			delete(g.states, name)
		}
	}
}

// Set stores an externally observed state, e.g. from a state query.
func (g *Guard) Set(name string, st types.VEState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.states[name] = st
}

// Forget drops what is known about name.
func (g *Guard) Forget(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.states, name)
}

// State returns the last observed state of name.
func (g *Guard) State(name string) (types.VEState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	st, ok := g.states[name]
	return st, ok
}
