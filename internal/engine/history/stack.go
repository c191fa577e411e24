package history

import (
	"errors"
	"fmt"
	"sync"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when NewHistory gets no limit.
const DefaultMaxEntries = 1000

// Target is the document an entry is undone or redone against.
type Target interface {
	Replace(start, end ByteOffset, text string) (ByteOffset, error)
	SetRanges(ranges []Range)
}

// History manages undo/redo stacks of applied batches.
type History struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	maxEntries int
}

// NewHistory creates a history keeping at most maxEntries undo entries.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records an applied batch and clears the redo stack.
// Entries that change nothing are dropped.
func (h *History) Push(e *Entry) {
	if e == nil || len(e.Operations) == 0 || e.IsNoop() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the last batch and selects the restored text.
// The lock is released while t is edited.
func (h *History) Undo(t Target) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	after := e.After()
	// Right to left, so earlier ranges stay valid.
	for i := len(e.Operations) - 1; i >= 0; i-- {
		if _, err := t.Replace(after[i].Start, after[i].End, e.Operations[i].OldText); err != nil {
			return fmt.Errorf("undo %s: %w", e.Name, err)
		}
	}
	t.SetRanges(e.Before())

	h.mu.Lock()
	h.redoStack = append(h.redoStack, e)
	h.mu.Unlock()
	return nil
}

// Redo applies the last undone batch again and selects the inserted text.
func (h *History) Redo(t Target) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	for i := len(e.Operations) - 1; i >= 0; i-- {
		op := e.Operations[i]
		if _, err := t.Replace(op.Range.Start, op.Range.End, op.NewText); err != nil {
			return fmt.Errorf("redo %s: %w", e.Name, err)
		}
	}
	t.SetRanges(e.After())

	h.mu.Lock()
	h.undoStack = append(h.undoStack, e)
	h.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo describes the entry Undo would revert.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// Clear removes all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
