package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vradovic/fakebench/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid spec", inner)

	if err.Error() != "invalid spec: parse failed" {
		t.Errorf("expected 'invalid spec: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestInvalidInputError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewInvalidInput(3, "probability", 1.7)

	wrapped := fmt.Errorf("load predictions: %w", original)
	doubleWrapped := fmt.Errorf("run model: %w", wrapped)

	var ie *apperr.InvalidInputError
	if !errors.As(doubleWrapped, &ie) {
		t.Fatal("errors.As should find InvalidInputError through double wrapping")
	}
	if ie.Index != 3 || ie.Field != "probability" {
		t.Errorf("unexpected error fields: %+v", ie)
	}
}

func TestInsufficientDataError_Message(t *testing.T) {
	err := apperr.NewInsufficientData(4, 0)

	want := "threshold selection needs both classes: 4 positives, 0 negatives"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestDomainErrors_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("scorer connection failed")
	wrapped := fmt.Errorf("run model: %w", plain)

	var ee *apperr.EmptyInputError
	if errors.As(wrapped, &ee) {
		t.Fatal("errors.As should NOT find EmptyInputError in plain error chain")
	}
	var de *apperr.InsufficientDataError
	if errors.As(wrapped, &de) {
		t.Fatal("errors.As should NOT find InsufficientDataError in plain error chain")
	}
}
