// Package dispatch routes control socket requests to the handler registered
// for their command type.
package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mfulz/powergeist/protocol"
)

// HandlerFunc answers one request. It must always return a response.
type HandlerFunc func(ctx context.Context, req *protocol.Request) *protocol.Response

// Dispatcher maps command types to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// New returns an empty Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

// Register binds command to handler. Registering a command twice panics.
func (d *Dispatcher) Register(command string, handler HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.handlers[command]; exists {
		panic(fmt.Sprintf("command already registered: %s", command))
	}
	d.handlers[command] = handler
}

// Has reports whether command is registered.
func (d *Dispatcher) Has(command string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[command]
	return ok
}

// Commands returns the sorted registered command types.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler for req.Type. Unknown types get an error
// response instead of a handler call.
func (d *Dispatcher) Dispatch(ctx context.Context, req *protocol.Request) *protocol.Response {
	if req == nil || req.Type == "" {
		return &protocol.Response{Status: protocol.StatusError, Error: "missing command type"}
	}

	d.mu.RLock()
	handler, ok := d.handlers[req.Type]
	d.mu.RUnlock()
	if !ok {
		return &protocol.Response{Status: protocol.StatusError, Error: "unknown command"}
	}
	return handler(ctx, req)
}
