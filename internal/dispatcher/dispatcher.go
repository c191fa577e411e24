// Package dispatcher routes actions to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keystorm-inflection/internal/dispatcher/execctx"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
	"github.com/dshills/keystorm-inflection/internal/input"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router

	engine   execctx.EngineInterface
	cursors  execctx.CursorManagerInterface
	renderer execctx.RendererInterface

	config  Config
	metrics *Metrics
	logger  *slog.Logger

	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetLogger sets the logger used for dispatch records. Nil is ignored.
func (d *Dispatcher) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// SetEngine sets the text engine.
func (d *Dispatcher) SetEngine(engine execctx.EngineInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = engine
}

// SetCursors sets the cursor manager.
func (d *Dispatcher) SetCursors(cursors execctx.CursorManagerInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors = cursors
}

// SetRenderer sets the renderer.
func (d *Dispatcher) SetRenderer(renderer execctx.RendererInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renderer = renderer
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	ctx := d.buildContext(action)
	logger := ctx.Logger.With("action", action.Name)

	h := d.router.Route(action.Name)
	if h == nil {
		h = d.registry.Get(action.Name)
	}
	if h == nil {
		logger.Warn("no handler for action")
		return handler.Error(fmt.Errorf("%w: %s", ErrUnknownAction, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.processResult(result, ctx)
	d.runPostHooks(&action, ctx, &result)

	elapsed := time.Since(startTime)
	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, elapsed, result.Status)
	}

	attrs := []any{"status", result.Status.String(), "duration", elapsed}
	if result.Message != "" {
		attrs = append(attrs, "message", result.Message)
	}
	if result.Error != nil {
		logger.Error("dispatch failed", append(attrs, "error", result.Error)...)
	} else {
		logger.Debug("dispatched", attrs...)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			ctx.Logger.Error("handler panic", "action", action.Name, "panic", r, "stack", string(stack[:n]))

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(action input.Action) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.New()
	ctx.InvocationID = uuid.NewString()
	ctx.Logger = d.logger.With("invocation", ctx.InvocationID)
	ctx.Engine = d.engine
	ctx.Cursors = d.cursors
	ctx.Renderer = d.renderer
	ctx.Source = action.Source
	ctx.ReadOnly = d.config.ReadOnly
	ctx.DryRun = action.Args.GetBool("dryRun")
	return ctx
}

// processResult forwards view updates to the renderer.
func (d *Dispatcher) processResult(result handler.Result, ctx *execctx.ExecutionContext) {
	if ctx.Renderer == nil {
		return
	}
	if result.ViewUpdate.Redraw {
		ctx.Renderer.Redraw()
	}
	if result.ViewUpdate.Reveal != nil {
		ctx.Renderer.Show(*result.ViewUpdate.Reveal)
	}
}

// RegisterHandlerFunc registers fn for an action name without a namespace.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.ActionFunc) {
	d.registry.Register(actionName, &handler.SimpleHandler{ActionName: actionName, Fn: fn})
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h.Namespace(), h)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
