package model

import (
	"time"
)

// JobStatus represents the status of a long-running job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// JobType represents the type of job being executed
type JobType string

const (
	JobTypeBatchMatch JobType = "batch_match"
)

// Job represents a long-running background operation
type Job struct {
	ID          string            `json:"id"`
	Type        JobType           `json:"type"`
	Status      JobStatus         `json:"status"`
	Label       string            `json:"label,omitempty"`
	Progress    *JobProgress      `json:"progress,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Results     []MatchResponse   `json:"results,omitempty"`
}

// JobProgress tracks the progress of a job
type JobProgress struct {
	Current int     `json:"current"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
	Message string  `json:"message,omitempty"`
}

// GetProgressPercentage returns the progress as a percentage (0-100)
func (jp *JobProgress) GetProgressPercentage() float64 {
	if jp.Total == 0 {
		return 0
	}
	return float64(jp.Current) / float64(jp.Total) * 100
}
