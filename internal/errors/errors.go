package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrUnknownMatcher is returned when a request names a matcher that does not exist
	ErrUnknownMatcher = errors.New("unknown matcher")
)

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// LengthMismatchError is returned when a token attribute array is not aligned
// with the position array.
type LengthMismatchError struct {
	Field string
	Got   int
	Want  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("attribute '%s' has length %d, expected %d", e.Field, e.Got, e.Want)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewLengthMismatchError creates a new LengthMismatchError
func NewLengthMismatchError(field string, got, want int) *LengthMismatchError {
	return &LengthMismatchError{Field: field, Got: got, Want: want}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// UnknownMatcherError represents a request for a matcher type that is not supported
type UnknownMatcherError struct {
	Matcher string
}

func (e *UnknownMatcherError) Error() string {
	return fmt.Sprintf("unknown matcher '%s' (expected proximity, and or sequence)", e.Matcher)
}

func (e *UnknownMatcherError) Is(target error) bool {
	return target == ErrUnknownMatcher
}

// NewUnknownMatcherError creates a new UnknownMatcherError
func NewUnknownMatcherError(matcher string) *UnknownMatcherError {
	return &UnknownMatcherError{Matcher: matcher}
}
