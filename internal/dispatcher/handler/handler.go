// Package handler provides the handler interface and types for action dispatch.
package handler

import (
	"github.com/dshills/keystorm-inflection/internal/dispatcher/execctx"
	"github.com/dshills/keystorm-inflection/internal/input"
)

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// ActionFunc is the signature shared by function-based handlers.
type ActionFunc func(action input.Action, ctx *execctx.ExecutionContext) Result

// SimpleHandler wraps a function with an explicit action name.
type SimpleHandler struct {
	// ActionName is the name of the action this handler processes.
	ActionName string

	// Fn is the handler function.
	Fn ActionFunc

	// Prio is the handler priority.
	Prio int
}

// Handle implements Handler.Handle.
func (h *SimpleHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if h.Fn == nil {
		return Errorf("handler function is nil")
	}
	return h.Fn(action, ctx)
}

// CanHandle implements Handler.CanHandle.
func (h *SimpleHandler) CanHandle(actionName string) bool {
	return actionName == h.ActionName
}

// Priority implements Handler.Priority.
func (h *SimpleHandler) Priority() int {
	return h.Prio
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot ("inflection" in "inflection.pluralize").
type NamespaceHandler interface {
	// HandleAction handles an action within this namespace.
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix.
	Namespace() string
}

type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleAction(action, ctx)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return a.h.CanHandle(actionName)
}

func (a *namespaceAdapter) Priority() int {
	return 0
}

// BaseNamespaceHandler implements NamespaceHandler over a table of action functions.
type BaseNamespaceHandler struct {
	namespace string
	actions   map[string]ActionFunc
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		actions:   make(map[string]ActionFunc),
	}
}

// Register registers a handler function for a fully qualified action name.
func (h *BaseNamespaceHandler) Register(actionName string, fn ActionFunc) {
	h.actions[actionName] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// CanHandle implements NamespaceHandler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(actionName string) bool {
	_, ok := h.actions[actionName]
	return ok
}

// Actions returns the registered action names in no particular order.
func (h *BaseNamespaceHandler) Actions() []string {
	names := make([]string, 0, len(h.actions))
	for name := range h.actions {
		names = append(names, name)
	}
	return names
}

// HandleAction implements NamespaceHandler.HandleAction.
func (h *BaseNamespaceHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := h.actions[action.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", h.namespace, action.Name)
	}
	return fn(action, ctx)
}
