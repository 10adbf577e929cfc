package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/gcbaptista/go-hit-matcher/internal/errors"
	"github.com/gcbaptista/go-hit-matcher/internal/jobs"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// MatchBatchAsync runs every request of req in a background job.
func (e *Engine) MatchBatchAsync(req model.BatchMatchRequest) (string, error) {
	if len(req.Requests) == 0 {
		return "", errors.NewValidationError("requests", "at least one request is required")
	}
	for i, r := range req.Requests {
		if !r.Matcher.IsValid() {
			return "", fmt.Errorf("request %d: %w", i, errors.NewUnknownMatcherError(string(r.Matcher)))
		}
	}

	jobID := e.jobManager.CreateJob(model.JobTypeBatchMatch, req.Label, map[string]string{
		"operation": "batch_match",
		"requests":  strconv.Itoa(len(req.Requests)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeBatchMatchJob(ctx, req, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start batch match job: %w", err)
	}

	return jobID, nil
}

// executeBatchMatchJob executes the batch match job.
func (e *Engine) executeBatchMatchJob(ctx context.Context, req model.BatchMatchRequest, jobID string) error {
	total := len(req.Requests)
	results := make([]model.MatchResponse, 0, total)

	e.jobManager.UpdateJobProgress(jobID, 0, total, "Starting batch match")
	for i, r := range req.Requests {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch match cancelled after %d of %d requests: %w", i, total, err)
		}

		resp, err := e.Match(ctx, r)
		if err != nil {
			return fmt.Errorf("request %d (%s): %w", i, r.Matcher, err)
		}
		results = append(results, *resp)
		e.jobManager.UpdateJobProgress(jobID, i+1, total, fmt.Sprintf("Matched request %d of %d", i+1, total))
	}

	e.jobManager.SetJobResults(jobID, results)
	log.Printf("Batch match job %s finished %d requests", jobID, total)
	return nil
}

// GetJob retrieves a job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns jobs with the given label, optionally filtered by status.
func (e *Engine) ListJobs(label string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(label, status)
}

// GetJobMetrics returns current job performance metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
