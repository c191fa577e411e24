// Package inflection provides handlers that rewrite every selected span with an
// inflected form of its text.
package inflection

import (
	"errors"
	"fmt"

	"github.com/dshills/keystorm-inflection/internal/dispatcher/execctx"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/engine/cursor"
	"github.com/dshills/keystorm-inflection/internal/inflect"
	"github.com/dshills/keystorm-inflection/internal/input"
	"github.com/dshills/keystorm-inflection/internal/replace"
)

// Namespace is the action namespace served by Handler.
const Namespace = "inflection"

// Action names for inflection commands.
const (
	ActionPluralize     = "inflection.pluralize"
	ActionSingularize   = "inflection.singularize"
	ActionOrdinalize    = "inflection.ordinalize"
	ActionTransliterate = "inflection.transliterate"
)

// Result data keys.
const (
	DataReplacements = "replacements" // replace.Batch, dry runs only
	DataSelections   = "selections"   // []buffer.Range
	DataDelta        = "delta"        // buffer.ByteOffset
)

// MsgOverlap is the message of the no-op result returned when the selections
// overlap.
const MsgOverlap = "selections overlap"

// ActionName returns the action that runs k.
func ActionName(k inflect.Kind) string {
	return Namespace + "." + k.String()
}

// Handler runs inflection commands against the current selection.
type Handler struct {
	*handler.BaseNamespaceHandler

	inflector inflect.Inflector
	applier   *replace.Applier
}

// Option configures a Handler.
type Option func(*Handler)

// WithApplier sets the applier used to write batches.
func WithApplier(a *replace.Applier) Option {
	return func(h *Handler) {
		if a != nil {
			h.applier = a
		}
	}
}

// NewHandler creates a handler for all inflection actions backed by inf.
func NewHandler(inf inflect.Inflector, opts ...Option) *Handler {
	h := &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler(Namespace),
		inflector:            inf,
		applier:              replace.NewApplier(nil),
	}
	for _, opt := range opts {
		opt(h)
	}
	for _, k := range inflect.Kinds() {
		h.Register(ActionName(k), h.command(k))
	}
	return h
}

func (h *Handler) command(k inflect.Kind) handler.ActionFunc {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if err := ctx.ValidateForEdit(); err != nil {
			return handler.Error(err)
		}
		fn, err := inflect.Func(h.inflector, k)
		if err != nil {
			return handler.Error(err)
		}

		batch := BuildBatch(ctx.Engine, ctx.Cursors.All(), fn)
		if ctx.DryRun {
			return h.preview(ctx, batch)
		}
		return h.apply(action, ctx, batch)
	}
}

// BuildBatch pairs every selection with the transformed text it covers, in
// the order the selections are given.
func BuildBatch(engine execctx.EngineInterface, sels []cursor.Selection, fn inflect.Transform) replace.Batch {
	batch := make(replace.Batch, 0, len(sels))
	for _, sel := range sels {
		r := sel.Range()
		batch = append(batch, replace.New(r, fn(engine.TextRange(r.Start, r.End))))
	}
	return batch
}

func (h *Handler) preview(ctx *execctx.ExecutionContext, batch replace.Batch) handler.Result {
	ordered := replace.Order(batch)
	if err := replace.Validate(ctx.Engine.Len(), ordered); err != nil {
		if errors.Is(err, replace.ErrOverlap) {
			return handler.NoOpWithMessage(MsgOverlap)
		}
		return handler.Error(err)
	}
	return handler.SuccessWithData(DataReplacements, ordered)
}

func (h *Handler) apply(action input.Action, ctx *execctx.ExecutionContext, batch replace.Batch) handler.Result {
	edits := make([]handler.Edit, 0, len(batch))
	for _, r := range replace.Order(batch) {
		edits = append(edits, handler.Edit{
			Range:   r.Region,
			NewText: r.Text,
			OldText: ctx.Engine.TextRange(r.Region.Start, r.Region.End),
		})
	}

	host := &selectionHost{cursors: ctx.Cursors}
	res, err := h.applier.Apply(ctx.Engine, host, batch)
	switch {
	case errors.Is(err, replace.ErrOverlap):
		ctx.Logger.Debug("inflection skipped", "action", action.Name, "reason", err)
		return handler.NoOpWithMessage(MsgOverlap)
	case err != nil:
		return handler.Error(fmt.Errorf("%s: %w", action.Name, err))
	case res.Count() == 0:
		return handler.NoOp()
	}

	result := handler.Success().
		WithEdits(edits).
		WithRedraw().
		WithData(DataSelections, res.Selections).
		WithData(DataDelta, res.Delta)
	if host.revealed != nil {
		result = result.WithReveal(*host.revealed)
	}
	return result
}

// selectionHost hands new selections to the cursor manager and defers
// revealing to the renderer through the result's view update.
type selectionHost struct {
	cursors  execctx.CursorManagerInterface
	revealed *buffer.Range
}

func (s *selectionHost) SetRanges(ranges []buffer.Range) {
	s.cursors.SetRanges(ranges)
}

func (s *selectionHost) Show(r buffer.Range) {
	s.revealed = &r
}
