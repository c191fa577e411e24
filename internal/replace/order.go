package replace

import (
	"slices"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
)

// OrderRanges returns a copy of ranges sorted ascending by (Start, End).
// The sort is stable.
func OrderRanges(ranges []buffer.Range) []buffer.Range {
	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, buffer.Range.Compare)
	return sorted
}

// Order returns a copy of the batch sorted by region, (Start, End) ascending.
// Replacements with equal regions keep their input order.
func Order(batch Batch) Batch {
	sorted := slices.Clone(batch)
	slices.SortStableFunc(sorted, func(a, b Replacement) int {
		return a.Region.Compare(b.Region)
	})
	return sorted
}

// CheckOverlap reports the first pair of adjacent ranges that intersect.
// ranges must already be ordered; see OrderRanges.
func CheckOverlap(ranges []buffer.Range) error {
	for i := 1; i < len(ranges); i++ {
		if ranges[i-1].Intersects(ranges[i]) {
			return &OverlapError{First: ranges[i-1], Second: ranges[i]}
		}
	}
	return nil
}
