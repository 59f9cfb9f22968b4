package preprocessing

import "tabprep/internal/dataset"

// Deduplicate keeps the first occurrence of every distinct row. Two missing
// cells in the same column compare equal here, unlike everywhere else.
func Deduplicate(t *dataset.Table) (*dataset.Table, DuplicatesSummary) {
	seen := make(map[string]struct{}, t.Rows())
	keep := make([]bool, t.Rows())
	for i := range keep {
		key := t.RowKey(i)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep[i] = true
	}
	out := t.SelectRows(keep)

	return out, DuplicatesSummary{
		InitialShape:      t.Shape(),
		CleanedShape:      out.Shape(),
		DuplicatesRemoved: t.Rows() - out.Rows(),
	}
}
