package history

import (
	"fmt"
	"time"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
)

// ByteOffset is re-exported from buffer for convenience.
type ByteOffset = buffer.ByteOffset

// Range is re-exported from buffer for convenience.
type Range = buffer.Range

// Operation is one replacement of a batch.
type Operation struct {
	// Range is the replaced region before the batch was applied.
	Range Range

	OldText string
	NewText string
}

// NewOperation creates an operation replacing oldText at r with newText.
func NewOperation(r Range, oldText, newText string) Operation {
	return Operation{Range: r, OldText: oldText, NewText: newText}
}

// BytesDelta returns the change in buffer length caused by op.
func (op Operation) BytesDelta() ByteOffset {
	return ByteOffset(len(op.NewText) - len(op.OldText))
}

// IsNoop reports whether op leaves the text unchanged.
func (op Operation) IsNoop() bool {
	return op.OldText == op.NewText
}

func (op Operation) String() string {
	return fmt.Sprintf("%s %q -> %q", op.Range, op.OldText, op.NewText)
}

// Entry is an applied batch.
type Entry struct {
	Name       string
	Operations []Operation // position order, disjoint
	Timestamp  time.Time

	// Applied holds the ranges the buffer reported for the inserted texts.
	// It differs from the computed ranges when the buffer rewrites text,
	// such as line ending normalization.
	Applied []Range
}

// NewEntry creates an entry for ops, which must be in position order.
func NewEntry(name string, ops []Operation) *Entry {
	return &Entry{Name: name, Operations: ops, Timestamp: time.Now()}
}

// Before returns the ranges the batch replaced.
func (e *Entry) Before() []Range {
	ranges := make([]Range, len(e.Operations))
	for i, op := range e.Operations {
		ranges[i] = op.Range
	}
	return ranges
}

// WithApplied records the ranges the inserted texts occupied after the
// batch was applied. Ranges of the wrong length are ignored.
func (e *Entry) WithApplied(ranges []Range) *Entry {
	if len(ranges) == len(e.Operations) {
		e.Applied = append([]Range(nil), ranges...)
	}
	return e
}

// After returns the ranges the inserted texts occupy once the batch is
// applied: the recorded ranges if any, else computed from the new texts.
func (e *Entry) After() []Range {
	if len(e.Applied) == len(e.Operations) && len(e.Applied) > 0 {
		return append([]Range(nil), e.Applied...)
	}
	ranges := make([]Range, len(e.Operations))
	var shift ByteOffset
	for i, op := range e.Operations {
		start := op.Range.Start + shift
		ranges[i] = Range{Start: start, End: start + ByteOffset(len(op.NewText))}
		shift += op.BytesDelta()
	}
	return ranges
}

// IsNoop reports whether no operation of e changes the text.
func (e *Entry) IsNoop() bool {
	for _, op := range e.Operations {
		if !op.IsNoop() {
			return false
		}
	}
	return true
}

// EntryInfo describes an entry without exposing its operations.
type EntryInfo struct {
	Name      string
	Count     int
	Timestamp time.Time
}

func (e *Entry) info() EntryInfo {
	return EntryInfo{Name: e.Name, Count: len(e.Operations), Timestamp: e.Timestamp}
}
