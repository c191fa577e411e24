package dispatcher

import (
	"sync"

	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
)

// Registry holds handlers for actions outside any namespace, such as
// "undo". Namespaced actions are resolved by the Router first.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]handler.Handler)}
}

// Register binds h to name. An existing handler with a higher priority
// is kept.
func (r *Registry) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.handlers[name]; ok && cur.Priority() > h.Priority() {
		return
	}
	r.handlers[name] = h
}

// Get returns the handler bound to name, or nil.
func (r *Registry) Get(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}
