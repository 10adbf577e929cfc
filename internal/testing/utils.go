// Package testing provides utilities and helpers for testing the hit matcher.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-hit-matcher/config"
	"github.com/gcbaptista/go-hit-matcher/internal/engine"
	"github.com/gcbaptista/go-hit-matcher/model"
	"github.com/gcbaptista/go-hit-matcher/services"
)

// CreateTestEngine creates a new engine instance for testing. The job manager
// is stopped when the test finishes.
func CreateTestEngine(t *testing.T, settings config.MatcherSettings) *engine.Engine {
	t.Helper()

	eng, err := engine.NewEngine(settings, 2)
	require.NoError(t, err, "Failed to create test engine")

	t.Cleanup(eng.Stop)
	return eng
}

// SingleContextTokens builds token arrays with one context and no reusable
// tokens, the shape most matcher tests start from.
func SingleContextTokens(position []float64, term []int) model.TokenArrays {
	return model.TokenArrays{
		Context:  make([]int, len(position)),
		Position: position,
		Term:     term,
		Replace:  make([]bool, len(position)),
	}
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJobCompletion polls a job until it completes or times out
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()

	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress {
					t.Logf("Job %s completed successfully in %v", jobID, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusFailed:
				t.Fatalf("Job %s failed: %s", jobID, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a batch job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedLabel string, expectedResults int) {
	t.Helper()

	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, model.JobTypeBatchMatch, job.Type, "Job type should match")
	assert.Equal(t, expectedLabel, job.Label, "Job label should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
	assert.Len(t, job.Results, expectedResults, "Job should hold one result per request")
}
