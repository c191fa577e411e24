package dispatcher

import (
	"strings"
	"sync"

	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
)

// Router routes actions to handlers using namespace prefixes.
type Router struct {
	mu         sync.RWMutex
	namespaces map[string]handler.NamespaceHandler
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// RegisterNamespace registers a handler for all actions in a namespace.
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// Route finds the namespace handler for an action.
// Returns nil if the namespace is unknown or does not accept the action.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	namespace := extractNamespace(actionName)
	if namespace == "" {
		return nil
	}
	h, ok := r.namespaces[namespace]
	if !ok || !h.CanHandle(actionName) {
		return nil
	}
	return handler.NewNamespaceAdapter(h)
}

// extractNamespace returns the part of "namespace.action" before the dot,
// or "" when there is no dot.
func extractNamespace(actionName string) string {
	ns, _, ok := strings.Cut(actionName, ".")
	if !ok {
		return ""
	}
	return ns
}
