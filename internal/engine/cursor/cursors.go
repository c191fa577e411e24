package cursor

import "slices"

// CursorSet manages multiple cursors/selections.
// Selections are kept sorted by (start, end). Overlapping or identical
// selections are merged; selections that merely touch stay separate.
// The first selection is considered the "primary" selection.
type CursorSet struct {
	selections []Selection
}

// NewCursorSet creates a cursor set with a single selection.
func NewCursorSet(initial Selection) *CursorSet {
	return &CursorSet{
		selections: []Selection{initial},
	}
}

// NewCursorSetFromRanges creates a cursor set with one forward selection per range.
// An empty slice yields a single cursor at offset 0.
func NewCursorSetFromRanges(ranges []Range) *CursorSet {
	cs := &CursorSet{}
	cs.SetRanges(ranges)
	return cs
}

// Primary returns the primary (first) selection.
func (cs *CursorSet) Primary() Selection {
	if len(cs.selections) == 0 {
		return Selection{}
	}
	return cs.selections[0]
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the CursorSet.
func (cs *CursorSet) All() []Selection {
	return slices.Clone(cs.selections)
}

// Count returns the number of cursors/selections.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// IsMulti returns true if there are multiple selections.
func (cs *CursorSet) IsMulti() bool {
	return len(cs.selections) > 1
}

// Add adds a new selection, merging with overlapping ones.
func (cs *CursorSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.normalize()
}

// SetAll replaces all selections.
func (cs *CursorSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		cs.selections = []Selection{NewCursorSelection(0)}
		return
	}
	cs.selections = slices.Clone(sels)
	cs.normalize()
}

// SetRanges replaces all selections with forward selections over ranges.
func (cs *CursorSet) SetRanges(ranges []Range) {
	sels := make([]Selection, len(ranges))
	for i, r := range ranges {
		sels[i] = NewRangeSelection(r)
	}
	cs.SetAll(sels)
}

// HasSelection returns true if any selection is non-empty (has extent).
func (cs *CursorSet) HasSelection() bool {
	for _, sel := range cs.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// Clamp clamps all selections to the valid range [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset ByteOffset) {
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Clamp(maxOffset)
	}
	cs.normalize()
}

// Ranges returns all selection ranges.
func (cs *CursorSet) Ranges() []Range {
	ranges := make([]Range, len(cs.selections))
	for i, sel := range cs.selections {
		ranges[i] = sel.Range()
	}
	return ranges
}

// normalize sorts selections and merges overlapping ones.
func (cs *CursorSet) normalize() {
	if len(cs.selections) <= 1 {
		return
	}

	slices.SortStableFunc(cs.selections, func(a, b Selection) int {
		return a.Range().Compare(b.Range())
	})

	merged := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &merged[len(merged)-1]
		if last.Range().Intersects(sel.Range()) {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	cs.selections = merged
}
