package replace

import (
	"fmt"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
)

// Replacement pairs a source region with the text that will replace it.
type Replacement struct {
	Region buffer.Range
	Text   string
}

// New creates a Replacement for region.
func New(region buffer.Range, text string) Replacement {
	return Replacement{Region: region, Text: text}
}

// Selection returns the range the inserted text will occupy, anchored at
// the region's original start and not yet corrected for earlier
// replacements in the same batch.
func (r Replacement) Selection() buffer.Range {
	return buffer.Range{
		Start: r.Region.Start,
		End:   r.Region.Start + buffer.ByteOffset(len(r.Text)),
	}
}

// Delta returns how much the buffer grows (or shrinks) once r is applied.
func (r Replacement) Delta() buffer.ByteOffset {
	return buffer.ByteOffset(len(r.Text)) - r.Region.Len()
}

// String returns a human-readable representation of the replacement.
func (r Replacement) String() string {
	return fmt.Sprintf("%s => %q", r.Region, r.Text)
}

// Batch is the full set of replacements applied as one unit.
// Input order is irrelevant; the applier works in position order.
type Batch []Replacement

// Regions returns the regions of the batch in batch order.
func (b Batch) Regions() []buffer.Range {
	regions := make([]buffer.Range, len(b))
	for i, r := range b {
		regions[i] = r.Region
	}
	return regions
}
