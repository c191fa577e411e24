// Package execctx provides the execution context for action handlers.
package execctx

import (
	"io"
	"log/slog"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/engine/cursor"
	"github.com/dshills/keystorm-inflection/internal/input"
)

// EngineInterface abstracts the text engine for handlers.
type EngineInterface interface {
	// Read operations
	Text() string
	TextRange(start, end buffer.ByteOffset) string
	Len() buffer.ByteOffset

	// Replace swaps [start, end) for text and returns the end offset of the
	// inserted text.
	Replace(start, end buffer.ByteOffset, text string) (buffer.ByteOffset, error)

	RevisionID() buffer.RevisionID
}

// CursorManagerInterface abstracts cursor management for handlers.
type CursorManagerInterface interface {
	Primary() cursor.Selection
	All() []cursor.Selection
	Count() int
	HasSelection() bool

	SetAll(sels []cursor.Selection)
	SetRanges(ranges []buffer.Range)
}

// RendererInterface abstracts rendering for handlers.
type RendererInterface interface {
	// Show scrolls the view so that rng is visible.
	Show(rng buffer.Range)
	Redraw()
}

// ExecutionContext provides context for action execution.
// It contains references to the subsystems needed by handlers.
type ExecutionContext struct {
	// Engine provides access to the text buffer.
	Engine EngineInterface

	// Cursors provides access to cursor/selection state.
	Cursors CursorManagerInterface

	// Renderer provides view operations. May be nil.
	Renderer RendererInterface

	// Logger is scoped to the current dispatch.
	Logger *slog.Logger

	// InvocationID identifies the dispatch this context was built for.
	InvocationID string

	// Source is where the action came from.
	Source input.ActionSource

	// Execution options
	ReadOnly bool
	DryRun   bool // If true, don't apply changes (for preview)

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Data:   make(map[string]interface{}),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithCursors returns the context with cursors set.
func (ctx *ExecutionContext) WithCursors(cursors CursorManagerInterface) *ExecutionContext {
	ctx.Cursors = cursors
	return ctx
}

// WithDryRun returns the context with dry run mode enabled.
func (ctx *ExecutionContext) WithDryRun(dryRun bool) *ExecutionContext {
	ctx.DryRun = dryRun
	return ctx
}

// HasSelection returns true if there is an active selection.
func (ctx *ExecutionContext) HasSelection() bool {
	if ctx.Cursors != nil {
		return ctx.Cursors.HasSelection()
	}
	return false
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Cursors == nil {
		return ErrMissingCursors
	}
	if ctx.ReadOnly && !ctx.DryRun {
		return ErrReadOnly
	}
	return nil
}
