package buffer

import "sync/atomic"

// ByteOffset is a byte position in UTF-8 text.
type ByteOffset = int64

// RevisionID identifies one state of a buffer.
type RevisionID uint64

var revisionCounter atomic.Uint64

// NewRevisionID returns a process-wide unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}
