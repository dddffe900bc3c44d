// Package errors provides typed errors for machine learning operations.
//
// All constructors produce errors that participate in Go 1.13+ error
// chains: errors.Is finds the wrapped sentinels and errors.As extracts
// the concrete types. Stack traces and wrapping come from
// cockroachdb/errors, so "%+v" formatting yields full diagnostics.
package errors

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for common failure modes. Compare with errors.Is.
var (
	// ErrEmptyData indicates an operation received a dataset with no rows
	// or no features.
	ErrEmptyData = errors.New("empty data")

	// ErrNotImplemented indicates a requested capability does not exist.
	ErrNotImplemented = errors.New("not implemented")

	// ErrMetricUndefined indicates a metric is mathematically undefined for
	// the given inputs (e.g. a group with no truly-favorable instances has
	// no true-positive rate). Callers aggregating metrics should detect this
	// and exclude the result rather than substituting zero.
	ErrMetricUndefined = errors.New("metric undefined")
)

// Re-exports so callers need a single errors import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ModelError wraps a failure inside a model operation with the operation
// name and a short message.
type ModelError struct {
	Op      string
	Message string
	Err     error
}

// NewModelError creates a ModelError wrapping err.
func NewModelError(op, message string, err error) *ModelError {
	return &ModelError{Op: op, Message: message, Err: err}
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fairml: %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("fairml: %s: %s", e.Op, e.Message)
}

func (e *ModelError) Unwrap() error { return e.Err }

// NotFittedError indicates a model method was called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError for the given model and method.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("fairml: %s.%s: model is not fitted; call Fit first", e.ModelName, e.Method)
}

// DimensionError indicates a shape mismatch between expected and actual
// dimensions along a given axis (0 = rows, 1 = columns).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("fairml: %s: dimension mismatch on axis %d: expected %d, got %d",
		e.Op, e.Axis, e.Expected, e.Got)
}

// ValueError indicates an invalid argument value for an operation.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("fairml: %s: %s", e.Op, e.Message)
}

// ValidationError indicates malformed input data detected at construction
// or setup time. These are fatal configuration problems, not runtime
// conditions to retry.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// NewValidationError creates a ValidationError for a named field.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fairml: validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// ConvergenceWarning reports that an iterative fit stopped at its budget
// without meeting the convergence criterion. It is advisory, not an error.
type ConvergenceWarning struct {
	Model      string
	Iterations int
	Message    string
}

// NewConvergenceWarning creates a ConvergenceWarning.
func NewConvergenceWarning(model string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Model: model, Iterations: iterations, Message: message}
}

func (w *ConvergenceWarning) String() string {
	return fmt.Sprintf("fairml: %s: convergence warning after %d iterations: %s",
		w.Model, w.Iterations, w.Message)
}

// Warn emits a convergence warning to stderr. Training continues; the
// caller decides whether the unconverged result is usable.
func Warn(w *ConvergenceWarning) {
	fmt.Fprintln(os.Stderr, w.String())
}

// Recover converts a panic inside op into an error assigned to *errp.
// Use as: defer errors.Recover(&err, "StandardScaler.Fit").
func Recover(errp *error, op string) {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok {
			*errp = errors.Wrapf(err, "fairml: %s: panic", op)
			return
		}
		*errp = errors.Newf("fairml: %s: panic: %v", op, r)
	}
}
