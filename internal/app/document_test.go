package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keystorm-inflection/internal/app"
	"github.com/dshills/keystorm-inflection/internal/engine/buffer"
)

func TestNewDocument(t *testing.T) {
	doc := app.NewDocument("", "line one\r\nline two")

	assert.Equal(t, "Untitled", doc.Name)
	assert.Equal(t, "line one\r\nline two", doc.Text())
	assert.Equal(t, []buffer.Range{rng(0, doc.Len())}, doc.Ranges())
	assert.True(t, doc.HasSelection())
	assert.False(t, doc.IsModified())

	_, ok := doc.Revealed()
	assert.False(t, ok)
}

func TestReadDocument(t *testing.T) {
	doc, err := app.ReadDocument("<stdin>", strings.NewReader("geese"))
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", doc.Name)
	assert.Equal(t, "geese", doc.Text())
	assert.ErrorIs(t, doc.Save(), app.ErrNoDocument)

	var out bytes.Buffer
	n, err := doc.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, "geese", out.String())
}

func TestOpenAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("mouse"), 0o600))

	doc, err := app.OpenDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "words.txt", doc.Name)

	end, err := doc.Replace(0, 5, "mice")
	require.NoError(t, err)
	assert.Equal(t, buffer.ByteOffset(4), end)
	assert.True(t, doc.IsModified())

	require.NoError(t, doc.Save())
	assert.False(t, doc.IsModified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mice", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOpenMissing(t *testing.T) {
	_, err := app.OpenDocument(filepath.Join(t.TempDir(), "nope.txt"))
	var opErr *app.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "open", opErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocumentSelections(t *testing.T) {
	doc := app.NewDocument("", "abcdef")
	doc.SetRanges([]buffer.Range{rng(4, 6), rng(0, 2), rng(1, 3)})

	assert.Equal(t, []buffer.Range{rng(0, 3), rng(4, 6)}, doc.Ranges())
	assert.Equal(t, 2, doc.Count())

	doc.Show(rng(4, 6))
	doc.Redraw()
	r, ok := doc.Revealed()
	require.True(t, ok)
	assert.Equal(t, rng(4, 6), r)
}

func TestOperationError(t *testing.T) {
	err := app.NewOperationError("save", "a.txt", os.ErrPermission)
	assert.Equal(t, "save a.txt: permission denied", err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "save", app.NewOperationError("save", "", nil).Error())
}
