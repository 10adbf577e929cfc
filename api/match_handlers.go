package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-hit-matcher/internal/errors"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// MatchHandler runs one matcher over the token arrays in the request body.
// Request Body: model.MatchRequest
func (api *API) MatchHandler(c *gin.Context) {
	startTime := time.Now()

	var req model.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if !req.Matcher.IsValid() {
		SendUnknownMatcherError(c, string(req.Matcher))
		return
	}
	if result := ValidateMatchRequest(&req, api.matcher.Settings().MaxTokens); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	resp, err := api.matcher.Match(c.Request.Context(), req)
	if err != nil {
		sendMatchError(c, err)
		return
	}

	api.trackEvent(model.MatchEvent{
		Matcher:      req.Matcher,
		Tokens:       len(req.Tokens.Position),
		Hits:         resp.Hits,
		Partitions:   resp.Partitions,
		Cached:       resp.Cached,
		ResponseTime: time.Since(startTime),
	})

	c.JSON(http.StatusOK, resp)
}

// TextMatchHandler tokenizes raw documents and matches the query terms.
// Request Body: model.TextMatchRequest
func (api *API) TextMatchHandler(c *gin.Context) {
	startTime := time.Now()

	var req model.TextMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if !req.Matcher.IsValid() {
		SendUnknownMatcherError(c, string(req.Matcher))
		return
	}
	if result := ValidateTextMatchRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	resp, err := api.matcher.MatchText(c.Request.Context(), req)
	if err != nil {
		sendMatchError(c, err)
		return
	}

	api.trackEvent(model.MatchEvent{
		Matcher:      req.Matcher,
		Hits:         resp.Hits,
		Partitions:   1,
		ResponseTime: time.Since(startTime),
	})

	c.JSON(http.StatusOK, resp)
}

// BatchMatchHandler starts a background job running every request of the batch.
// Request Body: model.BatchMatchRequest
func (api *API) BatchMatchHandler(c *gin.Context) {
	var req model.BatchMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	for _, r := range req.Requests {
		if !r.Matcher.IsValid() {
			SendUnknownMatcherError(c, string(r.Matcher))
			return
		}
	}
	if result := ValidateBatchMatchRequest(&req, api.matcher.Settings().MaxTokens); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobID, err := api.matcher.MatchBatchAsync(req)
	if err != nil {
		sendMatchError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Batch match started",
		"job_id":  jobID,
		"total":   len(req.Requests),
	})
}

// trackEvent records the event asynchronously to avoid slowing down the response
func (api *API) trackEvent(event model.MatchEvent) {
	if api.analytics == nil {
		return
	}
	go func() {
		if err := api.analytics.TrackMatchEvent(event); err != nil {
			log.Printf("Warning: Failed to track match event: %v", err)
		}
	}()
}

// sendMatchError maps an engine error to a standardized error response
func sendMatchError(c *gin.Context, err error) {
	var lengthErr *internalErrors.LengthMismatchError
	var validationErr *internalErrors.ValidationError
	var matcherErr *internalErrors.UnknownMatcherError

	switch {
	case errors.As(err, &matcherErr):
		SendUnknownMatcherError(c, matcherErr.Matcher)
	case errors.As(err, &lengthErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: "tokens." + lengthErr.Field, Message: lengthErr.Error(), Code: "LENGTH_MISMATCH"})
	case errors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: validationErr.Field, Message: validationErr.Message, Code: "VALIDATION_ERROR"})
	case errors.Is(err, internalErrors.ErrInvalidInput):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		SendError(c, http.StatusServiceUnavailable, ErrorCodeMatchFailed, "Match cancelled: "+err.Error())
	default:
		SendMatchFailedError(c, err)
	}
}
