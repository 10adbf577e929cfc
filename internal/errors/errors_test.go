package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("n_unique", "must be at least 1")

	expectedMsg := "validation error for field 'n_unique': must be at least 1"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}

	// Without a field
	err2 := NewValidationError("", "empty request")
	if err2.Error() != "validation error: empty request" {
		t.Errorf("Unexpected message: %s", err2.Error())
	}
}

func TestLengthMismatchError(t *testing.T) {
	err := NewLengthMismatchError("context", 3, 4)

	expectedMsg := "attribute 'context' has length 3, expected 4"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}

	if errors.Is(err, ErrJobNotFound) {
		t.Error("Error should not match ErrJobNotFound")
	}
}

func TestJobNotFoundError(t *testing.T) {
	jobID := "job-456"
	err := NewJobNotFoundError(jobID)

	expectedMsg := "job with ID 'job-456' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}

func TestUnknownMatcherError(t *testing.T) {
	err := NewUnknownMatcherError("fuzzy")

	if !errors.Is(err, ErrUnknownMatcher) {
		t.Error("Expected error to match ErrUnknownMatcher sentinel")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("Error should not match ErrInvalidInput")
	}
}

func TestWrappedErrors(t *testing.T) {
	base := NewLengthMismatchError("term", 1, 2)
	wrapped := fmt.Errorf("partition 3: %w", base)

	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Error("Expected wrapped error to match ErrInvalidInput sentinel")
	}

	var lengthErr *LengthMismatchError
	if !errors.As(wrapped, &lengthErr) {
		t.Fatal("Expected errors.As to find LengthMismatchError")
	}
	if lengthErr.Field != "term" {
		t.Errorf("Expected field 'term', got '%s'", lengthErr.Field)
	}
}
