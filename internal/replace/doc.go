// Package replace applies a batch of non-overlapping text replacements to a
// buffer in one pass and moves the selection onto the inserted text.
//
// A batch is ordered by region, checked for intersecting regions, and then
// applied left to right. Each region is addressed in the coordinates of the
// original buffer; the applier keeps a running offset of how far earlier
// replacements have shifted the text and corrects every later region by it.
//
//	batch := replace.Batch{
//		replace.New(buffer.NewRange(0, 3), "cats"),
//		replace.New(buffer.NewRange(8, 11), "dogs"),
//	}
//	res, err := replace.Apply(doc, doc, batch)
//	// "cat and dog" -> "cats and dogs", selections [0:4) and [9:13)
//
// Validation happens before the first write, so a rejected batch never
// leaves a partial edit behind.
package replace
