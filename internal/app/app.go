package app

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dshills/keystorm-inflection/internal/config"
	"github.com/dshills/keystorm-inflection/internal/dispatcher"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/execctx"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/handlers/inflection"
	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/engine/history"
	"github.com/dshills/keystorm-inflection/internal/inflect"
	"github.com/dshills/keystorm-inflection/internal/input"
	"github.com/dshills/keystorm-inflection/internal/logging"
	"github.com/dshills/keystorm-inflection/internal/plugin/lua"
	"github.com/dshills/keystorm-inflection/internal/replace"
)

// Actions served by the application itself rather than a namespace handler.
const (
	ActionUndo = "undo"
	ActionRedo = "redo"
)

// Options configures application creation.
type Options struct {
	// Config is the loaded configuration. Nil means config.Default().
	Config *config.Config

	// Logger overrides the logger built from Config.
	Logger *slog.Logger

	// LogOutput receives log records when Logger is nil. Nil means stderr.
	LogOutput io.Writer

	// Document is the document commands run against. Required.
	Document *Document

	// LuaOutput receives script print output. Nil means stderr.
	LuaOutput io.Writer

	// ReadOnly rejects every mutating command.
	ReadOnly bool
}

// App is the inflection tool: a document, the dispatcher that edits it and
// a Lua runtime for scripts.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	doc        *Document
	inflector  *inflect.Engine
	applier    *replace.Applier
	dispatcher *dispatcher.Dispatcher
	lua        *lua.State

	mu     sync.Mutex
	closed bool
}

// New creates an application from opts.
func New(opts Options) (*App, error) {
	if opts.Document == nil {
		return nil, ErrNoDocument
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(cfg.LoggerConfig(), opts.LogOutput)
	}

	timeout, err := cfg.LuaTimeout()
	if err != nil {
		return nil, NewOperationError("init", "lua", err)
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		doc:    opts.Document,
		inflector: inflect.New(
			inflect.WithIrregular(cfg.Inflection.Irregular),
			inflect.WithUncountable(cfg.Inflection.Uncountable...),
		),
		applier: replace.NewApplier(logger.With("component", "replace")),
	}

	a.dispatcher = dispatcher.New(dispatcher.DefaultConfig().WithMetrics().WithReadOnly(opts.ReadOnly))
	a.dispatcher.SetLogger(logger.With("component", "dispatcher"))
	a.dispatcher.SetEngine(a.doc)
	a.dispatcher.SetCursors(a.doc)
	a.dispatcher.SetRenderer(a.doc)
	a.dispatcher.RegisterNamespace(inflection.NewHandler(a.inflector, inflection.WithApplier(a.applier)))
	a.dispatcher.RegisterHandlerFunc(ActionUndo, a.historyStep(a.doc.Undo))
	a.dispatcher.RegisterHandlerFunc(ActionRedo, a.historyStep(a.doc.Redo))
	a.dispatcher.RegisterPostHook(dispatcher.PostDispatchFunc(a.recordEdits))

	a.lua = lua.NewState(
		lua.WithExecutionTimeout(timeout),
		lua.WithInstructionLimit(cfg.Lua.InstructionLimit),
		lua.WithOutput(opts.LuaOutput),
	)
	lua.NewInflectionModule(a.lua, a.inflector, &scriptHost{app: a}).Install()

	logger.Debug("application initialized", "document", a.doc.Name, "readOnly", opts.ReadOnly)
	return a, nil
}

// recordEdits logs the edits of a successful dispatch and adds them to the
// document history as one undo step.
func (a *App) recordEdits(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if !result.IsOK() || len(result.Edits) == 0 {
		return
	}
	ops := make([]history.Operation, 0, len(result.Edits))
	for _, e := range result.Edits {
		ctx.Logger.Debug("edit", "range", e.Range.String(), "old", e.OldText, "new", e.NewText)
		ops = append(ops, history.NewOperation(e.Range, e.OldText, e.NewText))
	}
	applied, _ := result.GetData(inflection.DataSelections)
	ranges, _ := applied.([]buffer.Range)
	a.doc.Record(action.Name, ops, ranges)
}

// historyStep adapts a document undo or redo into an action handler.
func (a *App) historyStep(step func() error) handler.ActionFunc {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		if ctx.ReadOnly {
			return handler.Error(execctx.ErrReadOnly)
		}
		if err := step(); err != nil {
			return handler.Error(err)
		}
		result := handler.Success().WithRedraw()
		if ranges := a.doc.Ranges(); len(ranges) > 0 {
			result = result.WithReveal(ranges[0])
		}
		return result
	}
}

// Run applies the inflection k to every selection.
func (a *App) Run(k inflect.Kind) handler.Result {
	return a.Dispatch(input.NewAction(inflection.ActionName(k), input.SourceCLI))
}

// Preview computes the batch k would apply without touching the document.
func (a *App) Preview(k inflect.Kind) (replace.Batch, handler.Result) {
	action := input.NewAction(inflection.ActionName(k), input.SourceCLI).WithArg("dryRun", true)
	result := a.Dispatch(action)
	v, ok := result.GetData(inflection.DataReplacements)
	if !ok {
		return nil, result
	}
	batch, _ := v.(replace.Batch)
	return batch, result
}

// Dispatch runs action against the document.
func (a *App) Dispatch(action input.Action) handler.Result {
	if a.IsClosed() {
		return handler.Error(ErrClosed)
	}
	return a.dispatcher.Dispatch(action)
}

// Undo reverts the last applied batch. It returns
// history.ErrNothingToUndo when there is nothing to revert.
func (a *App) Undo() error {
	return a.Dispatch(input.NewAction(ActionUndo, input.SourceCLI)).Error
}

// Redo applies the last undone batch again.
func (a *App) Redo() error {
	return a.Dispatch(input.NewAction(ActionRedo, input.SourceCLI)).Error
}

// RunScript executes the Lua file at path.
func (a *App) RunScript(path string) error {
	if a.IsClosed() {
		return ErrClosed
	}
	if err := a.lua.DoFile(path); err != nil {
		return NewOperationError("script", path, err)
	}
	return nil
}

// RunScriptString executes Lua source code.
func (a *App) RunScriptString(code string) error {
	if a.IsClosed() {
		return ErrClosed
	}
	if err := a.lua.DoString(code); err != nil {
		return NewOperationError("script", "", err)
	}
	return nil
}

// Document returns the document being edited.
func (a *App) Document() *Document { return a.doc }

// Dispatcher returns the action dispatcher.
func (a *App) Dispatcher() *dispatcher.Dispatcher { return a.dispatcher }

// Config returns the configuration in use.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// IsClosed reports whether Close has been called.
func (a *App) IsClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Close releases the Lua runtime and logs dispatch statistics.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	metrics := a.dispatcher.Metrics()
	if n := metrics.TotalPanics(); n > 0 {
		a.logger.Warn("handler panics recovered", "count", n)
	}
	for _, s := range metrics.Snapshot() {
		a.logger.Debug("action stats",
			"action", s.Name,
			"count", s.DispatchCount,
			"ok", s.Count(handler.StatusOK),
			"noop", s.Count(handler.StatusNoOp),
			"avg", s.AverageDuration(),
		)
	}

	if err := a.lua.Close(); err != nil {
		return fmt.Errorf("close lua: %w", err)
	}
	return nil
}

// scriptHost exposes the document to the Lua module.
type scriptHost struct {
	app *App
}

func (h *scriptHost) Dispatch(action input.Action) handler.Result {
	return h.app.dispatcher.Dispatch(action)
}

func (h *scriptHost) Text() string { return h.app.doc.Text() }

func (h *scriptHost) Ranges() []buffer.Range { return h.app.doc.Ranges() }

func (h *scriptHost) SetRanges(ranges []buffer.Range) { h.app.doc.SetRanges(ranges) }

func (h *scriptHost) ApplyBatch(batch replace.Batch) (replace.Result, error) {
	if h.app.dispatcher.Config().ReadOnly {
		return replace.Result{}, execctx.ErrReadOnly
	}
	doc := h.app.doc
	ops := make([]history.Operation, 0, len(batch))
	for _, r := range replace.Order(batch) {
		ops = append(ops, history.NewOperation(r.Region, doc.TextRange(r.Region.Start, r.Region.End), r.Text))
	}
	res, err := h.app.applier.Apply(doc, doc, batch)
	if err != nil {
		return res, err
	}
	doc.Record("script.replace", ops, res.Selections)
	return res, nil
}

func (h *scriptHost) Undo() error {
	return h.app.dispatcher.Dispatch(input.NewAction(ActionUndo, input.SourcePlugin)).Error
}

func (h *scriptHost) Redo() error {
	return h.app.dispatcher.Dispatch(input.NewAction(ActionRedo, input.SourcePlugin)).Error
}
