package preprocessing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tabprep/internal/config"
	"tabprep/internal/dataset"
	apperrors "tabprep/internal/errors"
	"tabprep/internal/validation"
)

// Registry maps operation names to operations
type Registry struct {
	mu         sync.RWMutex
	operations map[string]Operation
	order      []string // Maintains registration order
	validator  *validation.ArgumentValidator
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		operations: make(map[string]Operation),
		order:      make([]string, 0),
		validator:  validation.NewArgumentValidator(),
	}
}

// DefaultRegistry returns a registry holding the five built-in operations.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, op := range []Operation{
		NewCleaningOperation(),
		NewFillOperation(),
		NewScalingOperation(),
		NewDuplicatesOperation(),
		NewOutliersOperation(),
	} {
		if err := r.Register(op); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds an operation to the registry
func (r *Registry) Register(op Operation) error {
	if op == nil {
		return fmt.Errorf("cannot register nil operation")
	}

	id := op.ID()
	if id == "" {
		return fmt.Errorf("operation ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.operations[id]; exists {
		return fmt.Errorf("operation with ID %s already registered", id)
	}

	r.operations[id] = op
	r.order = append(r.order, id)
	return nil
}

// Get returns the operation named id. An unknown name is an ARGUMENT error.
func (r *Registry) Get(id string) (Operation, error) {
	r.mu.RLock()
	op, exists := r.operations[id]
	r.mu.RUnlock()

	if !exists {
		return nil, apperrors.NewArgumentError(config.ErrMsgInvalidOperation).
			WithContext("operation", id).
			WithContext("allowed", r.ListIDs())
	}
	return op, nil
}

// ListIDs returns all operation names in registration order
func (r *Registry) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// ValidateMethod checks method against op. Operations without methods ignore it.
func (r *Registry) ValidateMethod(op Operation, method string) error {
	if !op.RequiresMethod() {
		return nil
	}
	if method == "" {
		return apperrors.NewParameterError(fmt.Sprintf(config.ErrMsgMethodRequired, op.ID()))
	}
	tag := "oneof=" + strings.Join(op.Methods(), " ")
	if err := r.validator.ValidateValue("method", method, tag); err != nil {
		return apperrors.NewAppError(apperrors.ErrTypeParameter, op.InvalidMethodMessage(), nil).
			WithContext("method", method).
			WithContext("allowed", op.Methods())
	}
	return nil
}

// Execute applies op to t. Errors that are not already classified, and
// panics, become OPERATION errors carrying the operation's prefix.
func Execute(ctx context.Context, op Operation, t *dataset.Table, method string) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, apperrors.FromPanic(op.ErrorPrefix(), rec)
		}
	}()

	result, err = op.Apply(ctx, t, method)
	if err != nil {
		return nil, apperrors.Wrap(op.ErrorPrefix(), err)
	}
	return result, nil
}
