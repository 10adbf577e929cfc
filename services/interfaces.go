package services

import (
	"context"

	"github.com/gcbaptista/go-hit-matcher/config"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// Matcher runs a matcher over a prepared token stream
type Matcher interface {
	Match(ctx context.Context, req model.MatchRequest) (*model.MatchResponse, error)
}

// TextMatcher tokenizes raw documents and runs a matcher over them
type TextMatcher interface {
	MatchText(ctx context.Context, req model.TextMatchRequest) (*model.TextMatchResponse, error)
}

// BatchMatcher runs several match requests as a background job
type BatchMatcher interface {
	MatchBatchAsync(req model.BatchMatchRequest) (string, error) // Returns job ID
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(label string, status *model.JobStatus) []*model.Job
}

// MatchService is everything the API needs from the engine
type MatchService interface {
	Matcher
	TextMatcher
	BatchMatcher
	JobManager
	Settings() config.MatcherSettings
}

// MatchTracker records matcher invocations for analytics
type MatchTracker interface {
	TrackMatchEvent(event model.MatchEvent) error
	GetDashboardData() (model.AnalyticsDashboard, error)
}
