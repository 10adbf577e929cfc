package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeUnknownMatcher   ErrorCode = "UNKNOWN_MATCHER"
	ErrorCodeJobNotFound      ErrorCode = "JOB_NOT_FOUND"

	// Server Error Codes (5xx)
	ErrorCodeMatchFailed   ErrorCode = "MATCH_FAILED"
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with one detail per failed field
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendUnknownMatcherError sends a standardized unknown matcher error
func SendUnknownMatcherError(c *gin.Context, matcher string) {
	SendError(c, http.StatusBadRequest, ErrorCodeUnknownMatcher,
		"Unknown matcher '"+matcher+"' (expected proximity, and or sequence)")
}

// SendJobNotFoundError sends a standardized job not found error
func SendJobNotFoundError(c *gin.Context, jobID string) {
	SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
		"Job '"+jobID+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendMatchFailedError sends a standardized match error
func SendMatchFailedError(c *gin.Context, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeMatchFailed,
		"Match failed: "+err.Error())
}
