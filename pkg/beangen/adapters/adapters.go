// Package adapters binds the beangen render service to gin, echo and fiber.
package adapters

import (
	"fmt"
	"strings"
	"sync"

	"github.com/toyz/beangen/pkg/beangen"
)

// New returns the default adapter for framework: gin, echo or fiber
func New(framework string) (beangen.WebServer, error) {
	switch strings.ToLower(framework) {
	case "gin":
		return NewDefaultGinAdapter(), nil
	case "echo":
		return NewDefaultEchoAdapter(), nil
	case "fiber":
		return NewDefaultFiberAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown framework %q: expected gin, echo or fiber", framework)
	}
}

// stopGuard remembers a Stop so that a Start arriving after it returns at once.
type stopGuard struct {
	mu      sync.Mutex
	stopped bool
}

// start runs fn under the guard and reports false when Stop already ran
func (g *stopGuard) start(fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return false
	}
	if fn != nil {
		fn()
	}
	return true
}

// stop marks the guard stopped and runs fn under it
func (g *stopGuard) stop(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = true
	if fn != nil {
		fn()
	}
}
