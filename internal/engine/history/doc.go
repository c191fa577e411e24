// Package history provides undo/redo for replacement batches.
//
// Every applied batch is recorded as one Entry holding its operations in
// position order and in pre-edit coordinates. Undo reverts the whole batch
// in one step and restores the selection that covered the original text;
// Redo applies it again and reselects the inserted text.
//
//	h := history.NewHistory(100)
//	h.Push(history.NewEntry("inflection.pluralize", ops))
//	h.Undo(target)
//	h.Redo(target)
package history
