package lua

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/keystorm-inflection/internal/dispatcher"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
	"github.com/dshills/keystorm-inflection/internal/dispatcher/handlers/inflection"
	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/engine/cursor"
	"github.com/dshills/keystorm-inflection/internal/engine/history"
	"github.com/dshills/keystorm-inflection/internal/inflect"
	"github.com/dshills/keystorm-inflection/internal/input"
	"github.com/dshills/keystorm-inflection/internal/replace"
)

// testHost is a document wired to a dispatcher.
type testHost struct {
	buf     *buffer.Buffer
	cursors *cursor.CursorSet
	d       *dispatcher.Dispatcher
	hist    *history.History
	shown   []buffer.Range
}

func newTestHost(text string, ranges ...buffer.Range) *testHost {
	h := &testHost{
		buf:     buffer.NewBufferFromString(text),
		cursors: cursor.NewCursorSetFromRanges(ranges),
		d:       dispatcher.NewWithDefaults(),
		hist:    history.NewHistory(10),
	}
	h.d.SetEngine(h.buf)
	h.d.SetCursors(h.cursors)
	h.d.RegisterNamespace(inflection.NewHandler(inflect.New()))
	return h
}

func (h *testHost) Dispatch(action input.Action) handler.Result { return h.d.Dispatch(action) }
func (h *testHost) Text() string                                 { return h.buf.Text() }
func (h *testHost) Ranges() []buffer.Range                       { return h.cursors.Ranges() }
func (h *testHost) SetRanges(ranges []buffer.Range)              { h.cursors.SetRanges(ranges) }
func (h *testHost) Show(r buffer.Range)                          { h.shown = append(h.shown, r) }

func (h *testHost) ApplyBatch(batch replace.Batch) (replace.Result, error) {
	var ops []history.Operation
	for _, r := range replace.Order(batch) {
		ops = append(ops, history.NewOperation(r.Region, h.buf.TextRange(r.Region.Start, r.Region.End), r.Text))
	}
	res, err := replace.Apply(h.buf, h, batch)
	if err == nil {
		h.hist.Push(history.NewEntry("replace", ops))
	}
	return res, err
}

func (h *testHost) Undo() error { return h.hist.Undo(&undoTarget{h}) }
func (h *testHost) Redo() error { return h.hist.Redo(&undoTarget{h}) }

type undoTarget struct{ h *testHost }

func (u *undoTarget) Replace(start, end buffer.ByteOffset, text string) (buffer.ByteOffset, error) {
	return u.h.buf.Replace(start, end, text)
}
func (u *undoTarget) SetRanges(ranges []buffer.Range) { u.h.cursors.SetRanges(ranges) }

func setup(t *testing.T, host *testHost, opts ...StateOption) *State {
	t.Helper()
	state := NewState(opts...)
	t.Cleanup(func() { _ = state.Close() })
	NewInflectionModule(state, inflect.New(), host).Install()
	return state
}

func TestStateSafeLibraries(t *testing.T) {
	state := NewState()
	defer state.Close()

	require.NoError(t, state.DoString(`x = string.upper("a") .. math.floor(2.5)`))
	assert.Equal(t, glua.LString("A2"), state.GetGlobal("x"))

	for _, name := range []string{"io", "os", "debug", "require", "dofile", "loadfile", "load"} {
		assert.Equal(t, glua.LNil, state.GetGlobal(name), name)
	}
}

func TestStateSyntaxError(t *testing.T) {
	state := NewState()
	defer state.Close()
	assert.Error(t, state.DoString(`invalid lua code !!!`))
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	require.NoError(t, state.Close())
	require.NoError(t, state.Close())

	assert.True(t, state.IsClosed())
	assert.ErrorIs(t, state.DoString(`x = 1`), ErrStateClosed)
	assert.Equal(t, glua.LNil, state.GetGlobal("x"))
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(`while true do end`)
	assert.ErrorIs(t, err, ErrExecutionTimeout)
}

func TestPrintRedirect(t *testing.T) {
	var out bytes.Buffer
	state := NewState(WithOutput(&out))
	defer state.Close()

	require.NoError(t, state.DoString(`print("a", 1, true)`))
	assert.Equal(t, "a\t1\ttrue\n", out.String())
}

func TestModuleTransforms(t *testing.T) {
	state := setup(t, newTestHost(""))

	require.NoError(t, state.DoString(`
		p = inflection.pluralize("goose")
		s = inflection.singularize("cats")
		o = inflection.ordinalize("22")
		a = inflection.transliterate("café")
	`))
	assert.Equal(t, glua.LString("geese"), state.GetGlobal("p"))
	assert.Equal(t, glua.LString("cat"), state.GetGlobal("s"))
	assert.Equal(t, glua.LString("22nd"), state.GetGlobal("o"))
	assert.Equal(t, glua.LString("cafe"), state.GetGlobal("a"))
}

func TestModuleExecute(t *testing.T) {
	host := newTestHost("cat and dog", buffer.NewRange(0, 3), buffer.NewRange(8, 11))
	state := setup(t, host)

	require.NoError(t, state.DoString(`
		status, msg = inflection.execute("pluralize")
		sels = inflection.selections()
		second = sels[2].start .. ":" .. sels[2].finish
		text = inflection.text()
		bad = inflection.execute("inflection.camelize")
	`))

	assert.Equal(t, "cats and dogs", host.buf.Text())
	assert.Equal(t, glua.LString("ok"), state.GetGlobal("status"))
	assert.Equal(t, glua.LString("9:13"), state.GetGlobal("second"))
	assert.Equal(t, glua.LString("cats and dogs"), state.GetGlobal("text"))
	assert.Equal(t, glua.LString("error"), state.GetGlobal("bad"))
}

func TestModuleSelectAndReplace(t *testing.T) {
	host := newTestHost("cat and dog")
	state := setup(t, host)

	require.NoError(t, state.DoString(`
		inflection.select({{start = 8, finish = 11}, {0, 3}})
		ok = inflection.replace({{0, 3, "cats"}, {start = 8, finish = 11, text = "dogs"}})
	`))
	assert.Equal(t, glua.LTrue, state.GetGlobal("ok"))
	assert.Equal(t, "cats and dogs", host.buf.Text())
	assert.Equal(t, []buffer.Range{buffer.NewRange(0, 4), buffer.NewRange(9, 13)}, host.cursors.Ranges())
	assert.Equal(t, []buffer.Range{buffer.NewRange(0, 4)}, host.shown)
}

func TestModuleReplaceOverlap(t *testing.T) {
	host := newTestHost("abcdef", buffer.NewRange(0, 1))
	state := setup(t, host)

	require.NoError(t, state.DoString(`ok, why = inflection.replace({{0, 3, "x"}, {2, 5, "y"}})`))
	assert.Equal(t, glua.LFalse, state.GetGlobal("ok"))
	assert.Equal(t, glua.LString("overlap"), state.GetGlobal("why"))
	assert.Equal(t, "abcdef", host.buf.Text())
	assert.Equal(t, []buffer.Range{buffer.NewRange(0, 1)}, host.cursors.Ranges())
}

func TestModuleReplaceInvalid(t *testing.T) {
	host := newTestHost("abc")
	state := setup(t, host)

	assert.Error(t, state.DoString(`inflection.replace({{2, 1, "x"}})`))
	assert.Error(t, state.DoString(`inflection.replace({{0, 9, "x"}})`))
	assert.Error(t, state.DoString(`inflection.replace({"nope"})`))
	assert.Equal(t, "abc", host.buf.Text())
}

func TestModuleRejectsNonIntegerOffsets(t *testing.T) {
	host := newTestHost("cat and dog", buffer.NewRange(0, 3))
	state := setup(t, host)

	tests := []string{
		`inflection.replace({{0.9, 3.7, "X"}})`,
		`inflection.replace({{0, 2.5, "X"}})`,
		`inflection.replace({{0/0, 3, "X"}})`,
		`inflection.replace({{0, math.huge, "X"}})`,
		`inflection.replace({{-math.huge, 3, "X"}})`,
		`inflection.replace({{start = 1e300, finish = 1e300}})`,
		`inflection.select({{0.5, 3}})`,
	}
	for _, code := range tests {
		t.Run(code, func(t *testing.T) {
			err := state.DoString(code)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "must be an integer")
		})
	}
	assert.Equal(t, "cat and dog", host.buf.Text())
	assert.Equal(t, []buffer.Range{buffer.NewRange(0, 3)}, host.cursors.Ranges())

	require.NoError(t, state.DoString(`inflection.replace({{0.0, 3.0, "X"}})`))
	assert.Equal(t, "X and dog", host.buf.Text())
}

func TestModuleSelectOutsideText(t *testing.T) {
	host := newTestHost("abc", buffer.NewRange(0, 1))
	state := setup(t, host)

	err := state.DoString(`inflection.select({{0, 9}})`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside text")
	assert.Equal(t, []buffer.Range{buffer.NewRange(0, 1)}, host.cursors.Ranges())
}

func TestInstructionLimit(t *testing.T) {
	state := setup(t, newTestHost(""), WithInstructionLimit(3))

	err := state.DoString(`for i = 1, 10 do inflection.pluralize("cat") end`)
	assert.ErrorIs(t, err, ErrInstructionLimit)

	require.NoError(t, state.DoString(`inflection.pluralize("cat")`), "the count resets per run")
	assert.Equal(t, int64(1), state.InstructionCount())
}

func TestModuleUndoRedo(t *testing.T) {
	host := newTestHost("cat and dog")
	state := setup(t, host)

	require.NoError(t, state.DoString(`
		first = inflection.undo()
		inflection.replace({{0, 3, "cats"}, {8, 11, "dogs"}})
		undone = inflection.undo()
		after_undo = inflection.text()
		redone = inflection.redo()
		again = inflection.redo()
	`))

	assert.Equal(t, glua.LFalse, state.GetGlobal("first"))
	assert.Equal(t, glua.LTrue, state.GetGlobal("undone"))
	assert.Equal(t, glua.LString("cat and dog"), state.GetGlobal("after_undo"))
	assert.Equal(t, glua.LTrue, state.GetGlobal("redone"))
	assert.Equal(t, glua.LFalse, state.GetGlobal("again"))
	assert.Equal(t, "cats and dogs", host.Text())
	assert.Equal(t, []buffer.Range{buffer.NewRange(0, 4), buffer.NewRange(9, 13)}, host.Ranges())
}

func TestModuleExecuteDryRun(t *testing.T) {
	host := newTestHost("goose", buffer.NewRange(0, 5))
	state := setup(t, host)

	require.NoError(t, state.DoString(`status = inflection.execute("pluralize", {dryRun = true})`))

	assert.Equal(t, glua.LString("ok"), state.GetGlobal("status"))
	assert.Equal(t, "goose", host.Text())
}
