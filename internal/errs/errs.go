// Package errs provides the structured error kinds used across the fit/
// predict boundary, following the teacher corpus's pattern (see
// YuminosukeSato-scigo's pkg/errors) of wrapping github.com/cockroachdb/errors
// with small typed error values instead of ad-hoc fmt.Errorf strings.
package errs

import "github.com/cockroachdb/errors"

// InvalidHyperparameter is returned when fit-time configuration is
// inconsistent: negative depth/leaf/split counts, an unknown criterion or
// split policy, or class-unbalanced mode without an explicit class weight.
type InvalidHyperparameter struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *InvalidHyperparameter) Error() string {
	return errors.Newf("invalid hyperparameter %q = %v: %s", e.Name, e.Value, e.Reason).Error()
}

// NewInvalidHyperparameter builds an InvalidHyperparameter error.
func NewInvalidHyperparameter(name string, value interface{}, reason string) error {
	return &InvalidHyperparameter{Name: name, Value: value, Reason: reason}
}

// ShapeMismatch is returned when X or y do not divide evenly by the declared
// number of features/outputs, or when their row counts disagree.
type ShapeMismatch struct {
	Context string
	Got     int
	Want    int
}

func (e *ShapeMismatch) Error() string {
	return errors.Newf("shape mismatch in %s: got %d, want %d", e.Context, e.Got, e.Want).Error()
}

// NewShapeMismatch builds a ShapeMismatch error.
func NewShapeMismatch(context string, got, want int) error {
	return &ShapeMismatch{Context: context, Got: got, Want: want}
}

// InvalidState is returned when an operation is attempted on a model that
// has not been fit, e.g. Predict before Fit.
type InvalidState struct {
	Reason string
}

func (e *InvalidState) Error() string {
	return errors.Newf("invalid state: %s", e.Reason).Error()
}

// NewInvalidState builds an InvalidState error.
func NewInvalidState(reason string) error {
	return &InvalidState{Reason: reason}
}

// Wrap attaches additional context to err using cockroachdb/errors, preserving
// the original error for errors.Is / errors.As.
func Wrap(err error, context string) error {
	return errors.Wrap(err, context)
}
