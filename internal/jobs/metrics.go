package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-hit-matcher/model"
)

// JobMetricsData represents job metrics data without mutex (safe for copying)
type JobMetricsData struct {
	JobsCreated          int64                     `json:"jobs_created"`
	JobsCompleted        int64                     `json:"jobs_completed"`
	JobsFailed           int64                     `json:"jobs_failed"`
	JobsCancelled        int64                     `json:"jobs_cancelled"`
	TotalExecutionTime   time.Duration             `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration             `json:"average_execution_time_ns"`
	RequestsMatched      int64                     `json:"requests_matched"`
	TokensMatched        int64                     `json:"tokens_matched"`
	HitsFound            int64                     `json:"hits_found"`
	JobsByStatus         map[model.JobStatus]int64 `json:"jobs_by_status"`
	LastUpdated          time.Time                 `json:"last_updated"`
}

// JobMetrics tracks job outcomes and the matching work done by batch jobs
type JobMetrics struct {
	mu   sync.RWMutex
	data JobMetricsData
}

// NewJobMetrics creates a new metrics collector
func NewJobMetrics() *JobMetrics {
	return &JobMetrics{
		data: JobMetricsData{
			JobsByStatus: make(map[model.JobStatus]int64),
			LastUpdated:  time.Now(),
		},
	}
}

// RecordJobCreated increments job creation counter
func (m *JobMetrics) RecordJobCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.JobsCreated++
	m.data.JobsByStatus[model.JobStatusPending]++
	m.data.LastUpdated = time.Now()
}

// RecordJobStatusChange updates status counters
func (m *JobMetrics) RecordJobStatusChange(oldStatus, newStatus model.JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" {
		m.data.JobsByStatus[oldStatus]--
		if m.data.JobsByStatus[oldStatus] < 0 {
			m.data.JobsByStatus[oldStatus] = 0
		}
	}
	m.data.JobsByStatus[newStatus]++
	m.data.LastUpdated = time.Now()
}

// RecordJobCompleted records successful job completion
func (m *JobMetrics) RecordJobCompleted(executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.JobsCompleted++
	m.data.TotalExecutionTime += executionTime
	m.data.AverageExecutionTime = m.data.TotalExecutionTime / time.Duration(m.data.JobsCompleted)
	m.data.LastUpdated = time.Now()
}

// RecordJobFailed records job failure
func (m *JobMetrics) RecordJobFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.JobsFailed++
	m.data.LastUpdated = time.Now()
}

// RecordJobCancelled records a job stopped by a shutdown
func (m *JobMetrics) RecordJobCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.JobsCancelled++
	m.data.LastUpdated = time.Now()
}

// RecordMatches adds the output of a batch to the matching counters
func (m *JobMetrics) RecordMatches(results []model.MatchResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range results {
		m.data.RequestsMatched++
		m.data.TokensMatched += int64(len(r.HitIDs))
		m.data.HitsFound += int64(r.Hits)
	}
	m.data.LastUpdated = time.Now()
}

// GetMetrics returns a copy of current metrics without mutex (safe for copying)
func (m *JobMetrics) GetMetrics() JobMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data := m.data
	data.JobsByStatus = make(map[model.JobStatus]int64, len(m.data.JobsByStatus))
	for k, v := range m.data.JobsByStatus {
		data.JobsByStatus[k] = v
	}
	return data
}

// GetSuccessRate returns the success rate (0.0 to 1.0)
func (m *JobMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	finished := m.data.JobsCompleted + m.data.JobsFailed
	if finished == 0 {
		return 1.0 // No jobs yet, assume 100% success
	}
	return float64(m.data.JobsCompleted) / float64(finished)
}

// GetCurrentWorkload returns the number of currently active jobs
func (m *JobMetrics) GetCurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.data.JobsByStatus[model.JobStatusPending] + m.data.JobsByStatus[model.JobStatusRunning]
}
