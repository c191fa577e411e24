package app

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
	"github.com/dshills/keystorm-inflection/internal/engine/cursor"
	"github.com/dshills/keystorm-inflection/internal/engine/history"
)

// Document is a buffer together with its selection and view state.
// It serves as engine, cursor manager and renderer for the dispatcher.
type Document struct {
	// Path is the file path (empty for stdin or scratch buffers).
	Path string

	// Name is the display name (file name, "<stdin>" or "Untitled").
	Name string

	buf     *buffer.Buffer
	history *history.History

	mu       sync.Mutex
	cursors  *cursor.CursorSet
	revealed *buffer.Range
	redraws  int

	modified atomic.Bool
}

// NewDocument creates a document over content with the whole text selected.
// Line endings are preserved as written.
func NewDocument(path, content string) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	buf := buffer.NewBufferFromString(content, buffer.WithPreservedLineEndings())
	return &Document{
		Path:    path,
		Name:    name,
		buf:     buf,
		history: history.NewHistory(0),
		cursors: cursor.NewCursorSet(cursor.NewSelection(0, buf.Len())),
	}
}

// ReadDocument reads a whole document from r.
func ReadDocument(name string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewOperationError("read", name, err)
	}
	doc := NewDocument("", string(data))
	doc.Name = name
	return doc, nil
}

// OpenDocument reads the file at path.
func OpenDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return NewDocument(path, string(data)), nil
}

// Save writes the document to its path and clears the modified flag.
func (d *Document) Save() error {
	if d.Path == "" {
		return NewOperationError("save", d.Name, ErrNoDocument)
	}
	info, err := os.Stat(d.Path)
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(d.Path, []byte(d.buf.Text()), mode); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	d.modified.Store(false)
	return nil
}

// WriteTo writes the document text to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.buf.Text())
	return int64(n), err
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// Text returns the full document text.
func (d *Document) Text() string { return d.buf.Text() }

// TextRange returns the text in [start, end).
func (d *Document) TextRange(start, end buffer.ByteOffset) string { return d.buf.TextRange(start, end) }

// Len returns the document length in bytes.
func (d *Document) Len() buffer.ByteOffset { return d.buf.Len() }

// RevisionID returns the buffer revision.
func (d *Document) RevisionID() buffer.RevisionID { return d.buf.RevisionID() }

// Replace swaps [start, end) for text and marks the document modified.
func (d *Document) Replace(start, end buffer.ByteOffset, text string) (buffer.ByteOffset, error) {
	out, err := d.buf.Replace(start, end, text)
	if err == nil {
		d.modified.Store(true)
	}
	return out, err
}

// Primary returns the primary selection.
func (d *Document) Primary() cursor.Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursors.Primary()
}

// All returns a copy of all selections.
func (d *Document) All() []cursor.Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursors.All()
}

// Count returns the number of selections.
func (d *Document) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursors.Count()
}

// HasSelection reports whether any selection is non-empty.
func (d *Document) HasSelection() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursors.HasSelection()
}

// SetAll replaces all selections.
func (d *Document) SetAll(sels []cursor.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors.SetAll(sels)
}

// SetRanges replaces all selections with forward selections over ranges.
func (d *Document) SetRanges(ranges []buffer.Range) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors.SetRanges(ranges)
}

// Ranges returns the selected ranges in position order.
func (d *Document) Ranges() []buffer.Range {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursors.Ranges()
}

// Show records r as the range the view should reveal.
func (d *Document) Show(r buffer.Range) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revealed = &r
}

// Redraw counts a full redraw request.
func (d *Document) Redraw() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.redraws++
}

// Revealed returns the last revealed range.
func (d *Document) Revealed() (buffer.Range, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.revealed == nil {
		return buffer.Range{}, false
	}
	return *d.revealed, true
}

// Record adds an applied batch to the undo history. applied holds the
// ranges the inserted texts ended up in; nil means they are computed from ops.
func (d *Document) Record(name string, ops []history.Operation, applied []buffer.Range) {
	d.history.Push(history.NewEntry(name, ops).WithApplied(applied))
}

// Undo reverts the last recorded batch.
func (d *Document) Undo() error {
	return d.history.Undo(d)
}

// Redo applies the last undone batch again.
func (d *Document) Redo() error {
	return d.history.Redo(d)
}

// History returns the undo history.
func (d *Document) History() *history.History {
	return d.history
}
