package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// EmptyInputError reports a zero-length prediction set.
type EmptyInputError struct {
	Message string
}

func (e *EmptyInputError) Error() string {
	return e.Message
}

func NewEmptyInput(msg string) *EmptyInputError {
	return &EmptyInputError{Message: msg}
}

// InvalidInputError reports an out-of-range probability or label at a sample
// index. The first bad value fails the whole set; nothing is clamped.
type InvalidInputError struct {
	Index int
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %v at index %d", e.Field, e.Value, e.Index)
}

func NewInvalidInput(index int, field string, value float64) *InvalidInputError {
	return &InvalidInputError{Index: index, Field: field, Value: value}
}

// InsufficientDataError reports a prediction set missing a class, which leaves
// true/false-positive rates undefined and makes threshold selection impossible.
type InsufficientDataError struct {
	Positives int
	Negatives int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("threshold selection needs both classes: %d positives, %d negatives", e.Positives, e.Negatives)
}

func NewInsufficientData(positives, negatives int) *InsufficientDataError {
	return &InsufficientDataError{Positives: positives, Negatives: negatives}
}
