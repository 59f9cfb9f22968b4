package preprocessing

import (
	"context"
	"fmt"
	"strings"

	"tabprep/internal/config"
	"tabprep/internal/dataset"
)

// Result is the outcome of a successful operation.
type Result struct {
	Table   *dataset.Table
	Summary Summary
}

// Operation is one named transform selectable from the command line.
type Operation interface {
	// ID returns the operation name used on the command line
	ID() string

	// Name returns the human-readable name
	Name() string

	// Methods returns the accepted method values, empty when the operation takes none
	Methods() []string

	// RequiresMethod reports whether a method argument is mandatory
	RequiresMethod() bool

	// InvalidMethodMessage is the error text for a method outside Methods
	InvalidMethodMessage() string

	// ErrorPrefix prefixes unexpected failures, e.g. "Cleaning error"
	ErrorPrefix() string

	// OutputSuffix returns the suffix that replaces the input extension
	OutputSuffix(method string) string

	// Apply runs the transform. The input table is not modified.
	Apply(ctx context.Context, t *dataset.Table, method string) (*Result, error)
}

// BaseOperation provides the descriptive half of Operation.
type BaseOperation struct {
	id            string
	name          string
	methods       []string
	invalidMethod string
	errorPrefix   string
	suffix        string
}

// ID returns the operation name
func (b *BaseOperation) ID() string { return b.id }

// Name returns the human-readable name
func (b *BaseOperation) Name() string { return b.name }

// Methods returns a copy of the accepted methods
func (b *BaseOperation) Methods() []string {
	out := make([]string, len(b.methods))
	copy(out, b.methods)
	return out
}

// RequiresMethod reports whether the operation takes a method
func (b *BaseOperation) RequiresMethod() bool { return len(b.methods) > 0 }

// InvalidMethodMessage returns the unknown-method error text
func (b *BaseOperation) InvalidMethodMessage() string { return b.invalidMethod }

// ErrorPrefix returns the prefix for unexpected failures
func (b *BaseOperation) ErrorPrefix() string { return b.errorPrefix }

// OutputSuffix expands the method into the suffix template
func (b *BaseOperation) OutputSuffix(method string) string {
	if strings.Contains(b.suffix, "%s") {
		return fmt.Sprintf(b.suffix, method)
	}
	return b.suffix
}

// CleaningOperation drops incomplete rows.
type CleaningOperation struct{ BaseOperation }

// NewCleaningOperation creates the cleaning operation
func NewCleaningOperation() *CleaningOperation {
	return &CleaningOperation{BaseOperation{
		id:          config.OpCleaning,
		name:        "Drop incomplete rows",
		errorPrefix: "Cleaning error",
		suffix:      config.SuffixCleaned,
	}}
}

// Apply runs Clean
func (o *CleaningOperation) Apply(ctx context.Context, t *dataset.Table, _ string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, summary := Clean(t)
	return &Result{Table: out, Summary: summary}, nil
}

// FillOperation imputes missing cells.
type FillOperation struct{ BaseOperation }

// NewFillOperation creates the fill operation
func NewFillOperation() *FillOperation {
	return &FillOperation{BaseOperation{
		id:            config.OpFill,
		name:          "Fill missing values",
		methods:       []string{config.FillMean, config.FillMedian, config.FillMode},
		invalidMethod: MsgInvalidFillMethod,
		errorPrefix:   "Fill error",
		suffix:        config.SuffixFilled,
	}}
}

// Apply runs Fill
func (o *FillOperation) Apply(ctx context.Context, t *dataset.Table, method string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, summary, err := Fill(t, method)
	if err != nil {
		return nil, err
	}
	return &Result{Table: out, Summary: summary}, nil
}

// ScalingOperation rescales numeric columns.
type ScalingOperation struct{ BaseOperation }

// NewScalingOperation creates the scaling operation
func NewScalingOperation() *ScalingOperation {
	return &ScalingOperation{BaseOperation{
		id:            config.OpScaling,
		name:          "Scale numeric columns",
		methods:       []string{config.ScaleNormalization, config.ScaleStandardization},
		invalidMethod: MsgInvalidScalingMethod,
		errorPrefix:   "Scaling error",
		suffix:        config.SuffixScaled,
	}}
}

// Apply runs Scale
func (o *ScalingOperation) Apply(ctx context.Context, t *dataset.Table, method string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, summary, err := Scale(t, method)
	if err != nil {
		return nil, err
	}
	return &Result{Table: out, Summary: summary}, nil
}

// DuplicatesOperation removes repeated rows.
type DuplicatesOperation struct{ BaseOperation }

// NewDuplicatesOperation creates the duplicates operation
func NewDuplicatesOperation() *DuplicatesOperation {
	return &DuplicatesOperation{BaseOperation{
		id:          config.OpDuplicates,
		name:        "Remove duplicate rows",
		errorPrefix: "Duplicates error",
		suffix:      config.SuffixDeduplicated,
	}}
}

// Apply runs Deduplicate
func (o *DuplicatesOperation) Apply(ctx context.Context, t *dataset.Table, _ string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, summary := Deduplicate(t)
	return &Result{Table: out, Summary: summary}, nil
}

// OutliersOperation removes rows with outlying numeric cells.
type OutliersOperation struct{ BaseOperation }

// NewOutliersOperation creates the outliers operation
func NewOutliersOperation() *OutliersOperation {
	return &OutliersOperation{BaseOperation{
		id:            config.OpOutliers,
		name:          "Remove outliers",
		methods:       []string{config.OutlierZScore, config.OutlierIQR},
		invalidMethod: MsgInvalidOutlierMethod,
		errorPrefix:   "Outliers error",
		suffix:        config.SuffixOutliers,
	}}
}

// Apply runs RemoveOutliers
func (o *OutliersOperation) Apply(ctx context.Context, t *dataset.Table, method string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, summary, err := RemoveOutliers(t, method)
	if err != nil {
		return nil, err
	}
	return &Result{Table: out, Summary: summary}, nil
}
