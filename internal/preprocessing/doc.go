// Package preprocessing implements the table transforms offered by the
// preprocess command: cleaning, fill, scaling, duplicates and outliers.
//
// Each transform is a pure function from a *dataset.Table to a new table and
// a summary record. The input table is never modified. Operations wrap the
// transforms with their method validation, output suffix and error prefix,
// and a Registry maps operation names to them.
package preprocessing
