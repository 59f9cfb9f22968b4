package preprocessing

import "tabprep/internal/dataset"

// Summary is the operation-specific record emitted in the success envelope.
// Field names and order are part of the output contract.
type Summary interface {
	// Removed returns the number of rows the operation dropped.
	Removed() int
}

// CleaningSummary describes a cleaning run.
type CleaningSummary struct {
	OriginalRows int      `json:"original_rows"`
	CleanedRows  int      `json:"cleaned_rows"`
	DroppedRows  int      `json:"dropped_rows"`
	Columns      []string `json:"columns"`
}

func (s CleaningSummary) Removed() int { return s.DroppedRows }

// FillSummary describes a fill run.
type FillSummary struct {
	MissingBefore int    `json:"missing_before"`
	MissingAfter  int    `json:"missing_after"`
	MethodUsed    string `json:"method_used"`
}

func (s FillSummary) Removed() int { return 0 }

// ScalingSummary describes a scaling run.
type ScalingSummary struct {
	Method        string        `json:"method"`
	ScaledColumns []string      `json:"scaled_columns"`
	OriginalShape dataset.Shape `json:"original_shape"`
	ScaledShape   dataset.Shape `json:"scaled_shape"`
}

func (s ScalingSummary) Removed() int { return 0 }

// DuplicatesSummary describes a deduplication run.
type DuplicatesSummary struct {
	InitialShape      dataset.Shape `json:"initial_shape"`
	CleanedShape      dataset.Shape `json:"cleaned_shape"`
	DuplicatesRemoved int           `json:"duplicates_removed"`
}

func (s DuplicatesSummary) Removed() int { return s.DuplicatesRemoved }

// OutliersSummary describes an outlier removal run.
type OutliersSummary struct {
	OriginalShape dataset.Shape `json:"original_shape"`
	CleanedShape  dataset.Shape `json:"cleaned_shape"`
	RowsRemoved   int           `json:"rows_removed"`
	Method        string        `json:"method"`
}

func (s OutliersSummary) Removed() int { return s.RowsRemoved }
