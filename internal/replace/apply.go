package replace

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
)

// TextBuffer is the buffer capability the applier needs.
type TextBuffer interface {
	Len() buffer.ByteOffset
	TextRange(start, end buffer.ByteOffset) string

	// Replace substitutes text for [start, end) and returns the end offset
	// of the inserted text.
	Replace(start, end buffer.ByteOffset, text string) (buffer.ByteOffset, error)
}

// SelectionHost owns the selection of the buffer being edited.
type SelectionHost interface {
	// SetRanges clears the selection and selects ranges.
	SetRanges(ranges []buffer.Range)

	// Show scrolls r into view.
	Show(r buffer.Range)
}

// Result describes an applied batch.
type Result struct {
	// Selections are the ranges now covering each inserted text, in
	// position order.
	Selections []buffer.Range

	// Delta is the total change in buffer length.
	Delta buffer.ByteOffset
}

// Count returns the number of replacements applied.
func (r Result) Count() int {
	return len(r.Selections)
}

// Applier applies replacement batches.
type Applier struct {
	logger *slog.Logger
}

// NewApplier creates an Applier. A nil logger discards output.
func NewApplier(logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Applier{logger: logger}
}

// Apply applies batch to buf and selects the inserted texts.
//
// The batch is validated before anything is written: every region must lie
// inside the buffer and no two regions may intersect. On failure the buffer
// and selection are left untouched and an error matching ErrOverlap or
// buffer.ErrRangeInvalid is returned.
//
// An empty batch is a no-op and leaves the selection alone.
func (a *Applier) Apply(buf TextBuffer, sel SelectionHost, batch Batch) (Result, error) {
	if len(batch) == 0 {
		return Result{}, nil
	}

	ordered := Order(batch)
	if err := Validate(buf.Len(), ordered); err != nil {
		a.logger.Debug("replacement batch rejected", "size", len(ordered), "error", err)
		return Result{}, err
	}

	selections := make([]buffer.Range, 0, len(ordered))
	var offset buffer.ByteOffset
	for _, r := range ordered {
		region := r.Region.Shift(offset)
		end, err := buf.Replace(region.Start, region.End, r.Text)
		if err != nil {
			// Unreachable with a conforming buffer once validate passed.
			return Result{}, fmt.Errorf("replace %s: %w", region, err)
		}
		selections = append(selections, buffer.Range{Start: region.Start, End: end})
		offset += (end - region.Start) - r.Region.Len()
	}

	sel.SetRanges(selections)
	sel.Show(selections[0])

	a.logger.Debug("replacement batch applied", "size", len(selections), "delta", offset)
	return Result{Selections: selections, Delta: offset}, nil
}

// Apply applies batch with a discarding logger.
func Apply(buf TextBuffer, sel SelectionHost, batch Batch) (Result, error) {
	return NewApplier(nil).Apply(buf, sel, batch)
}

// Validate checks that every region of an ordered batch lies inside a buffer
// of the given length and that no two regions intersect.
func Validate(length buffer.ByteOffset, ordered Batch) error {
	for _, r := range ordered {
		if !r.Region.IsValid() || r.Region.End > length {
			return fmt.Errorf("region %s outside buffer of length %d: %w", r.Region, length, buffer.ErrRangeInvalid)
		}
	}
	return CheckOverlap(ordered.Regions())
}
