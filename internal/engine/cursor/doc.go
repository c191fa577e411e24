// Package cursor provides selection management for the inflection host.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text.
//
// CursorSet holds the multi-selection of a document. Its selections are
// kept sorted by (start, end) and overlapping ones are merged, using the
// same intersection rule as buffer.Range.Intersects. Selections that only
// touch are kept apart, so replacing two adjacent words yields two
// adjacent selections rather than one.
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use.
// CursorSet is not thread-safe and should be protected by external
// synchronization if accessed concurrently.
package cursor
