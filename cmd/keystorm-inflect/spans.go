package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
)

// parseSpans parses start:end flags into ranges inside a text of length n.
func parseSpans(specs []string, n buffer.ByteOffset) ([]buffer.Range, error) {
	bounds := buffer.NewRange(0, n)
	ranges := make([]buffer.Range, 0, len(specs))
	for _, spec := range specs {
		r, err := parseSpan(spec)
		if err != nil {
			return nil, err
		}
		if !bounds.ContainsRange(r) {
			return nil, fmt.Errorf("span %q: outside text of length %d", spec, n)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func parseSpan(spec string) (buffer.Range, error) {
	startStr, endStr, ok := strings.Cut(spec, ":")
	if !ok {
		return buffer.Range{}, fmt.Errorf("span %q: want start:end", spec)
	}
	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil {
		return buffer.Range{}, fmt.Errorf("span %q: bad start: %w", spec, err)
	}
	end, err := strconv.ParseInt(strings.TrimSpace(endStr), 10, 64)
	if err != nil {
		return buffer.Range{}, fmt.Errorf("span %q: bad end: %w", spec, err)
	}
	r := buffer.NewRange(start, end)
	if !r.IsValid() {
		return buffer.Range{}, fmt.Errorf("span %q: %w", spec, buffer.ErrRangeInvalid)
	}
	return r, nil
}
