package terraform

import (
	"errors"
	"sync"
)

// ErrReentrant is returned when a wrapper run is started while another one
// sharing the same Guard is in progress.
var ErrReentrant = errors.New("terraform wrapper is already running")

// Guard allows one wrapper run at a time. It is owned by the top-level
// invocation and passed down to every Wrapper it creates.
type Guard struct {
	mu     sync.Mutex
	active bool
}

// Enter marks the guard active. The returned release func must be called once.
func (g *Guard) Enter() (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active {
		return nil, ErrReentrant
	}
	g.active = true

	return func() {
		g.mu.Lock()
		g.active = false
		g.mu.Unlock()
	}, nil
}
