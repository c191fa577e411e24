package buffer

import (
	"strings"
	"sync"
)

// LineEnding is the line ending style a buffer writes.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// Sequence returns the line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds the text of a single document.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	revisionID RevisionID
	lineEnding LineEnding
	preserve   bool
}

// NewBufferFromString creates a buffer holding s.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.text = b.normalize(s)
	return b
}

// normalize rewrites line endings to the buffer's style unless the buffer
// preserves them.
func (b *Buffer) normalize(s string) string {
	if b.preserve || (!strings.ContainsRune(s, '\r') && b.lineEnding == LineEndingLF) {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding != LineEndingLF {
		s = strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
	}
	return s
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// TextRange returns text in [start, end).
// Out-of-range bounds are clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := ByteOffset(len(b.text))
	start = max(0, min(start, n))
	end = max(start, min(end, n))
	return b.text[start:end]
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// Replace replaces [start, end) with text and returns the end offset of the
// inserted text. The end may differ from start+len(text) when line endings
// are normalized. A failed replace leaves the buffer and its revision alone.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := Range{Start: start, End: end}
	if !r.IsValid() {
		return 0, ErrRangeInvalid
	}
	if end > ByteOffset(len(b.text)) {
		return 0, ErrOffsetOutOfRange
	}

	text = b.normalize(text)
	b.text = b.text[:start] + text + b.text[end:]
	b.revisionID = NewRevisionID()
	return start + ByteOffset(len(text)), nil
}

// RevisionID returns the current revision. Every successful Replace
// produces a new one.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}
