// Package buffer provides the thread-safe text buffer that inflection
// commands edit, along with the Range value type used to
// address it.
//
// All positions are byte offsets into UTF-8 text. Ranges are half-open,
// [Start, End), and ordered by Start then End.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("cat and dog")
//	buf.Replace(0, 3, "cats")    // "cats and dog"
//	buf.TextRange(9, 12)         // "dog"
//
// Line endings are normalized to the buffer's style on every write unless
// WithPreservedLineEndings is given; Replace reports the real end offset
// so callers never assume len(text) bytes were written.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock.
package buffer
