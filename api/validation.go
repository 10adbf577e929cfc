// Package api provides the gin HTTP handlers of the hit matcher together with
// request validation and standardized error responses.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-hit-matcher/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateTokenArrays checks that every token attribute array is aligned with
// the position array. Fields are reported under prefix.
func ValidateTokenArrays(tokens *model.TokenArrays, maxTokens int, prefix string) *ValidationResult {
	result := &ValidationResult{Valid: true}
	n := len(tokens.Position)

	if maxTokens > 0 && n > maxTokens {
		result.AddError(prefix+"position", fmt.Sprintf("Stream has %d tokens, the limit is %d", n, maxTokens))
		return result
	}

	if tokens.Replace == nil {
		result.AddError(prefix+"replace", "Replace flags are required")
	}

	required := []struct {
		field string
		size  int
	}{
		{"context", len(tokens.Context)},
		{"term", len(tokens.Term)},
		{"replace", len(tokens.Replace)},
	}
	for _, r := range required {
		if r.size != n && !(r.field == "replace" && tokens.Replace == nil) {
			result.AddError(prefix+r.field, fmt.Sprintf("Expected %d entries, got %d", n, r.size))
		}
	}

	optional := []struct {
		field string
		size  int
	}{
		{"subcontext", len(tokens.Subcontext)},
		{"sequence", len(tokens.Sequence)},
		{"group", len(tokens.Group)},
	}
	for _, o := range optional {
		if o.size != 0 && o.size != n {
			result.AddError(prefix+o.field, fmt.Sprintf("Expected 0 or %d entries, got %d", n, o.size))
		}
	}

	return result
}

// ValidateMatchRequest validates a match request before it reaches the engine
func ValidateMatchRequest(req *model.MatchRequest, maxTokens int) *ValidationResult {
	return validateMatchRequest(req, maxTokens, "")
}

func validateMatchRequest(req *model.MatchRequest, maxTokens int, prefix string) *ValidationResult {
	result := ValidateTokenArrays(&req.Tokens, maxTokens, prefix+"tokens.")

	switch req.Matcher {
	case model.MatcherProximity:
		if req.Window != nil && *req.Window < 0 {
			result.AddError(prefix+"window", "Window cannot be negative")
		}
		fallthrough
	case model.MatcherAND:
		if req.NUnique < 1 {
			result.AddError(prefix+"n_unique", "n_unique must be at least 1")
		}
	case model.MatcherSequence:
		if req.Length < 1 {
			result.AddError(prefix+"length", "length must be at least 1")
		}
	default:
		result.AddError(prefix+"matcher", fmt.Sprintf("Unknown matcher '%s'", req.Matcher))
	}

	return result
}

// ValidateTextMatchRequest validates a text match request
func ValidateTextMatchRequest(req *model.TextMatchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(req.Documents) == 0 {
		result.AddError("documents", "No documents provided")
	}
	for i, doc := range req.Documents {
		if _, ok := doc.GetDocumentID(); !ok {
			result.AddError(fmt.Sprintf("documents[%d].documentID", i), "Document ID cannot be empty or whitespace-only")
		}
	}

	if len(req.Terms) == 0 {
		result.AddError("terms", "At least one term is required")
	}
	for i, term := range req.Terms {
		if strings.TrimSpace(term) == "" {
			result.AddError(fmt.Sprintf("terms[%d]", i), "Term cannot be empty or whitespace-only")
		}
	}
	if req.Matcher == model.MatcherSequence && len(req.Terms) > 1 {
		result.AddError("terms", "The sequence matcher takes exactly one phrase")
	}

	if req.Window != nil && *req.Window < 0 {
		result.AddError("window", "Window cannot be negative")
	}
	if req.MaxTypos < 0 || req.MaxTypos > 2 {
		result.AddError("max_typos", "max_typos must be between 0 and 2")
	}

	return result
}

// ValidateBatchMatchRequest validates every request of a batch
func ValidateBatchMatchRequest(req *model.BatchMatchRequest, maxTokens int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(req.Requests) == 0 {
		result.AddError("requests", "No requests provided")
		return result
	}

	for i := range req.Requests {
		sub := validateMatchRequest(&req.Requests[i], maxTokens, fmt.Sprintf("requests[%d].", i))
		for _, err := range sub.Errors {
			result.AddError(err.Field, err.Message)
		}
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
