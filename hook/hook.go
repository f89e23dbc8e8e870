// Package hook dispatches packets to handlers registered with a filter.
//
// A filter matches on packet type, target, port and command byte; each criterion has a
// wildcard value. Handlers run synchronously, in registration order, on the goroutine
// calling Dispatch.
package hook

import (
	"sync"

	"github.com/arloliu/go-asb/asb"
)

// Filter wildcards.
const (
	AnyType    asb.PacketType = 0xFF
	AnyTarget  uint32         = 0
	AnyPort                   = -1
	AnyCommand                = -1
)

// Filter selects packets by their metadata and first payload byte.
type Filter struct {
	Type    asb.PacketType // packet type, or AnyType
	Target  uint32         // target address, or AnyTarget
	Port    int            // port, or AnyPort
	Command int            // command byte, or AnyCommand
}

// MatchAll is a filter that matches every packet.
var MatchAll = Filter{Type: AnyType, Target: AnyTarget, Port: AnyPort, Command: AnyCommand}

// ForCommand returns a filter that matches every packet carrying the given command.
func ForCommand(code byte) Filter {
	f := MatchAll
	f.Command = int(code)

	return f
}

// Match reports whether the packet passes the filter.
// A filter on a command never matches a packet with an empty payload.
func (f Filter) Match(p asb.Packet) bool {
	if f.Type != AnyType && f.Type != p.Type {
		return false
	}
	if f.Target != AnyTarget && f.Target != p.Target {
		return false
	}
	if f.Port != AnyPort && f.Port != p.Port {
		return false
	}
	if f.Command != AnyCommand {
		code, ok := p.Command()
		if !ok || int(code) != f.Command {
			return false
		}
	}

	return true
}

// Handler is called with every packet that matches its filter.
type Handler func(p asb.Packet)

type hookEntry struct {
	filter  Filter
	handler Handler
}

// Registry holds the registered hooks. The zero value is ready to use.
//
// Register and Dispatch may be called concurrently. Handlers may register further hooks;
// those take effect from the next Dispatch.
type Registry struct {
	mu    sync.RWMutex
	hooks []hookEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a handler for packets matching the filter.
func (r *Registry) Register(f Filter, h Handler) {
	if h == nil {
		return
	}

	r.mu.Lock()
	r.hooks = append(r.hooks, hookEntry{filter: f, handler: h})
	r.mu.Unlock()
}

// Dispatch runs every matching handler and returns how many ran.
func (r *Registry) Dispatch(p asb.Packet) int {
	r.mu.RLock()
	hooks := r.hooks
	r.mu.RUnlock()

	n := 0
	for _, h := range hooks {
		if h.filter.Match(p) {
			h.handler(p)
			n++
		}
	}

	return n
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.hooks)
}
