package replace

import (
	"errors"
	"fmt"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
)

// ErrOverlap is matched by every *OverlapError.
var ErrOverlap = errors.New("replacements overlap")

// OverlapError names the first two replacement regions found to intersect.
type OverlapError struct {
	First  buffer.Range
	Second buffer.Range
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("replacements overlap: %s and %s", e.First, e.Second)
}

// Is makes errors.Is(err, ErrOverlap) true.
func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlap
}
