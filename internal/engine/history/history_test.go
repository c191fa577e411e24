package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/engine/cursor"
	"github.com/dshills/keystorm-inflection/internal/engine/history"
)

type target struct {
	*buffer.Buffer
	*cursor.CursorSet
}

func newTarget(text string) *target {
	return &target{
		Buffer:    buffer.NewBufferFromString(text),
		CursorSet: cursor.NewCursorSet(cursor.NewCursorSelection(0)),
	}
}

func rng(start, end int64) buffer.Range { return buffer.NewRange(start, end) }

func pluralEntry() *history.Entry {
	return history.NewEntry("pluralize", []history.Operation{
		history.NewOperation(rng(0, 3), "cat", "cats"),
		history.NewOperation(rng(8, 11), "dog", "dogs"),
	})
}

func TestEntryRanges(t *testing.T) {
	e := pluralEntry()
	assert.Equal(t, []buffer.Range{rng(0, 3), rng(8, 11)}, e.Before())
	assert.Equal(t, []buffer.Range{rng(0, 4), rng(9, 13)}, e.After())
	assert.False(t, e.IsNoop())

	shrink := history.NewEntry("singularize", []history.Operation{
		history.NewOperation(rng(0, 5), "geese", "goose"),
		history.NewOperation(rng(6, 10), "mice", "mouse"),
	})
	assert.Equal(t, []buffer.Range{rng(0, 5), rng(6, 11)}, shrink.After())
}

func TestUndoRedoWithNormalizedText(t *testing.T) {
	// The buffer stores "x\r\ny" as "x\ny", one byte shorter than NewText.
	tgt := newTarget("ab cd")
	_, err := tgt.Replace(3, 5, "z")
	require.NoError(t, err)
	_, err = tgt.Replace(0, 2, "x\r\ny")
	require.NoError(t, err)
	require.Equal(t, "x\ny z", tgt.Text())

	e := history.NewEntry("replace", []history.Operation{
		history.NewOperation(rng(0, 2), "ab", "x\r\ny"),
		history.NewOperation(rng(3, 5), "cd", "z"),
	}).WithApplied([]buffer.Range{rng(0, 3), rng(4, 5)})
	assert.Equal(t, []buffer.Range{rng(0, 3), rng(4, 5)}, e.After())

	h := history.NewHistory(0)
	h.Push(e)
	require.NoError(t, h.Undo(tgt))
	assert.Equal(t, "ab cd", tgt.Text())
	assert.Equal(t, []buffer.Range{rng(0, 2), rng(3, 5)}, tgt.Ranges())

	require.NoError(t, h.Redo(tgt))
	assert.Equal(t, "x\ny z", tgt.Text())
	assert.Equal(t, []buffer.Range{rng(0, 3), rng(4, 5)}, tgt.Ranges())
}

func TestWithAppliedIgnoresMismatch(t *testing.T) {
	e := pluralEntry().WithApplied([]buffer.Range{rng(0, 1)})
	assert.Empty(t, e.Applied)
	assert.Equal(t, []buffer.Range{rng(0, 4), rng(9, 13)}, e.After())
}

func TestUndoRedo(t *testing.T) {
	tgt := newTarget("cats and dogs")
	h := history.NewHistory(0)
	h.Push(pluralEntry())

	require.True(t, h.CanUndo())
	require.NoError(t, h.Undo(tgt))
	assert.Equal(t, "cat and dog", tgt.Text())
	assert.Equal(t, []buffer.Range{rng(0, 3), rng(8, 11)}, tgt.Ranges())
	assert.True(t, h.CanRedo())

	require.NoError(t, h.Redo(tgt))
	assert.Equal(t, "cats and dogs", tgt.Text())
	assert.Equal(t, []buffer.Range{rng(0, 4), rng(9, 13)}, tgt.Ranges())
	assert.Equal(t, 1, h.UndoCount())
	assert.Equal(t, 0, h.RedoCount())
}

func TestNothingToUndo(t *testing.T) {
	h := history.NewHistory(10)
	tgt := newTarget("x")
	assert.ErrorIs(t, h.Undo(tgt), history.ErrNothingToUndo)
	assert.ErrorIs(t, h.Redo(tgt), history.ErrNothingToRedo)
}

func TestPushClearsRedoAndDropsNoops(t *testing.T) {
	tgt := newTarget("cats and dogs")
	h := history.NewHistory(10)
	h.Push(pluralEntry())
	require.NoError(t, h.Undo(tgt))

	h.Push(history.NewEntry("ordinalize", []history.Operation{
		history.NewOperation(rng(0, 3), "cat", "cat"),
	}))
	assert.True(t, h.CanRedo())

	h.Push(history.NewEntry("x", []history.Operation{history.NewOperation(rng(0, 1), "c", "C")}))
	assert.False(t, h.CanRedo())

	info, ok := h.PeekUndo()
	require.True(t, ok)
	assert.Equal(t, "x", info.Name)
	assert.Equal(t, 1, info.Count)
}

func TestMaxEntries(t *testing.T) {
	h := history.NewHistory(2)
	for _, name := range []string{"a", "b", "c"} {
		h.Push(history.NewEntry(name, []history.Operation{history.NewOperation(rng(0, 1), "x", "y")}))
	}
	assert.Equal(t, 2, h.UndoCount())
	info, _ := h.PeekUndo()
	assert.Equal(t, "c", info.Name)

	h.Clear()
	assert.False(t, h.CanUndo())
	_, ok := h.PeekUndo()
	assert.False(t, ok)
}
