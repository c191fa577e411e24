package buffer

import (
	"cmp"
	"fmt"
)

// Range represents a byte range in the buffer.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start ByteOffset // Inclusive start position
	End   ByteOffset // Exclusive end position
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end ByteOffset) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (0 <= Start <= End).
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange returns true if the given range is entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps returns true if the two ranges share at least one offset.
// An empty range overlaps a range that strictly surrounds its position.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersects reports whether two ranges collide as edit targets.
// Identical ranges always intersect, including two empty ranges at the
// same offset; otherwise it is Overlaps. Touching ranges such as [0:3)
// and [3:5) do not intersect.
func (r Range) Intersects(other Range) bool {
	return r == other || r.Overlaps(other)
}

// Shift returns a new range shifted by the given delta.
func (r Range) Shift(delta ByteOffset) Range {
	return Range{
		Start: r.Start + delta,
		End:   r.End + delta,
	}
}

// Compare orders ranges by Start, then End.
func (r Range) Compare(other Range) int {
	if c := cmp.Compare(r.Start, other.Start); c != 0 {
		return c
	}
	return cmp.Compare(r.End, other.End)
}
