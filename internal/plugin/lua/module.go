package lua

import (
	"errors"
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/engine/history"
	"github.com/dshills/keystorm-inflection/internal/inflect"
	"github.com/dshills/keystorm-inflection/internal/input"
	"github.com/dshills/keystorm-inflection/internal/replace"
)

// ModuleName is the global table installed by InflectionModule.
const ModuleName = "inflection"

// Host is the document a script edits.
type Host interface {
	// Dispatch runs an action against the document.
	Dispatch(action input.Action) handler.Result
	Text() string
	Ranges() []buffer.Range
	SetRanges(ranges []buffer.Range)
	// ApplyBatch applies a replacement batch and selects the inserted texts.
	ApplyBatch(batch replace.Batch) (replace.Result, error)
	// Undo reverts the last applied batch; Redo applies it again. Both
	// return history.ErrNothingToUndo/ErrNothingToRedo when the stack is empty.
	Undo() error
	Redo() error
}

// InflectionModule exposes the inflector and the document to scripts.
//
//	inflection.pluralize(s) / singularize / ordinalize / transliterate
//	inflection.execute("pluralize")      -> status, message
//	inflection.execute("pluralize", {dryRun = true})
//	inflection.text()                    -> buffer text
//	inflection.selections()              -> {{start=, finish=}, ...}
//	inflection.select({{0, 3}, ...})
//	inflection.replace({{0, 3, "cats"}}) -> true | false, "overlap"
//	inflection.undo() / inflection.redo() -> true | false
//
// Offsets are zero-based byte offsets, ranges are half-open.
type InflectionModule struct {
	state     *State
	inflector inflect.Inflector
	host      Host
}

// NewInflectionModule creates a module bound to state.
func NewInflectionModule(state *State, inf inflect.Inflector, host Host) *InflectionModule {
	return &InflectionModule{state: state, inflector: inf, host: host}
}

// Install registers the module as a global table.
func (m *InflectionModule) Install() {
	funcs := map[string]lua.LGFunction{
		"execute":    m.execute,
		"text":       m.text,
		"selections": m.selections,
		"select":     m.selectRanges,
		"replace":    m.replace,
		"undo":       m.step(m.host.Undo, history.ErrNothingToUndo),
		"redo":       m.step(m.host.Redo, history.ErrNothingToRedo),
	}
	for _, k := range inflect.Kinds() {
		funcs[k.String()] = m.transform(k)
	}
	m.state.RegisterModule(ModuleName, funcs)
}

func (m *InflectionModule) transform(k inflect.Kind) lua.LGFunction {
	fn, _ := inflect.Func(m.inflector, k)
	return func(L *lua.LState) int {
		m.state.charge(L)
		L.Push(lua.LString(fn(L.CheckString(1))))
		return 1
	}
}

// execute accepts "pluralize" or "inflection.pluralize" and an optional
// table of action arguments.
func (m *InflectionModule) execute(L *lua.LState) int {
	m.state.charge(L)
	name := L.CheckString(1)
	if !strings.Contains(name, ".") {
		name = ModuleName + "." + name
	}

	action := input.NewAction(name, input.SourcePlugin)
	if opts := L.OptTable(2, nil); opts != nil {
		opts.ForEach(func(k, v lua.LValue) {
			key, ok := k.(lua.LString)
			if !ok {
				return
			}
			switch v := v.(type) {
			case lua.LBool:
				action = action.WithArg(string(key), bool(v))
			case lua.LString:
				action = action.WithArg(string(key), string(v))
			case lua.LNumber:
				action = action.WithArg(string(key), float64(v))
			}
		})
	}

	result := m.host.Dispatch(action)
	msg := result.Message
	if result.Error != nil {
		msg = result.Error.Error()
	}
	L.Push(lua.LString(result.Status.String()))
	L.Push(lua.LString(msg))
	return 2
}

func (m *InflectionModule) text(L *lua.LState) int {
	m.state.charge(L)
	L.Push(lua.LString(m.host.Text()))
	return 1
}

func (m *InflectionModule) selections(L *lua.LState) int {
	m.state.charge(L)
	tbl := L.NewTable()
	for _, r := range m.host.Ranges() {
		item := L.NewTable()
		item.RawSetString("start", lua.LNumber(r.Start))
		item.RawSetString("finish", lua.LNumber(r.End))
		tbl.Append(item)
	}
	L.Push(tbl)
	return 1
}

func (m *InflectionModule) selectRanges(L *lua.LState) int {
	m.state.charge(L)
	tbl := L.CheckTable(1)
	bounds := buffer.NewRange(0, buffer.ByteOffset(len(m.host.Text())))
	var ranges []buffer.Range
	tbl.ForEach(func(_, v lua.LValue) {
		r, _ := checkSpan(L, v)
		if !bounds.ContainsRange(r) {
			L.RaiseError("span %s outside text %s", r, bounds)
		}
		ranges = append(ranges, r)
	})
	m.host.SetRanges(ranges)
	return 0
}

func (m *InflectionModule) replace(L *lua.LState) int {
	m.state.charge(L)
	tbl := L.CheckTable(1)
	var batch replace.Batch
	tbl.ForEach(func(_, v lua.LValue) {
		r, text := checkSpan(L, v)
		batch = append(batch, replace.New(r, text))
	})

	_, err := m.host.ApplyBatch(batch)
	switch {
	case errors.Is(err, replace.ErrOverlap):
		L.Push(lua.LFalse)
		L.Push(lua.LString("overlap"))
		return 2
	case err != nil:
		L.RaiseError("replace: %v", err)
	}
	L.Push(lua.LTrue)
	return 1
}

// step wraps an undo or redo call; an empty stack yields false.
func (m *InflectionModule) step(fn func() error, empty error) lua.LGFunction {
	return func(L *lua.LState) int {
		m.state.charge(L)
		err := fn()
		switch {
		case errors.Is(err, empty):
			L.Push(lua.LFalse)
		case err != nil:
			L.RaiseError("%v", err)
		default:
			L.Push(lua.LTrue)
		}
		return 1
	}
}

// checkSpan reads {start, finish[, text]} either positionally or by name.
func checkSpan(L *lua.LState, v lua.LValue) (buffer.Range, string) {
	item, ok := v.(*lua.LTable)
	if !ok {
		L.RaiseError("span must be a table, got %s", v.Type())
	}
	field := func(idx int, name string) lua.LValue {
		if f := item.RawGetString(name); f != lua.LNil {
			return f
		}
		return item.RawGetInt(idx)
	}

	r := buffer.NewRange(checkOffset(L, field(1, "start"), "start"), checkOffset(L, field(2, "finish"), "finish"))
	if !r.IsValid() {
		L.RaiseError("invalid span %s", r)
	}

	var text string
	if t := field(3, "text"); t != lua.LNil {
		s, ok := t.(lua.LString)
		if !ok {
			L.RaiseError("span text must be a string, got %s", t.Type())
		}
		text = string(s)
	}
	return r, text
}

// checkOffset converts a Lua number to a byte offset. Fractions, NaN and
// infinities raise instead of truncating.
func checkOffset(L *lua.LState, v lua.LValue, name string) buffer.ByteOffset {
	n, ok := v.(lua.LNumber)
	if !ok {
		L.RaiseError("span %s must be a number, got %s", name, v.Type())
		return 0
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		L.RaiseError("span %s must be an integer, got %v", name, f)
		return 0
	}
	return buffer.ByteOffset(f)
}
