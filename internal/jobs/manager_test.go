package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	hmerrors "github.com/gcbaptista/go-hit-matcher/internal/errors"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// waitForStatus polls a job until it reaches one of the final states or times out
func waitForStatus(t *testing.T, manager *Manager, jobID string) *model.Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := manager.GetJob(jobID)
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}
		if job.Status == model.JobStatusCompleted || job.Status == model.JobStatusFailed || job.Status == model.JobStatusCancelled {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Job %s did not finish in time", jobID)
	return nil
}

func TestJobManager_CreateJob(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeBatchMatch, "corpus-a", map[string]string{
		"requests": "3",
	})

	if jobID == "" {
		t.Error("Expected non-empty job ID")
	}

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get created job: %v", err)
	}

	if job.Type != model.JobTypeBatchMatch {
		t.Errorf("Expected job type %s, got %s", model.JobTypeBatchMatch, job.Type)
	}

	if job.Status != model.JobStatusPending {
		t.Errorf("Expected job status %s, got %s", model.JobStatusPending, job.Status)
	}

	if job.Label != "corpus-a" {
		t.Errorf("Expected label 'corpus-a', got %s", job.Label)
	}
}

func TestJobManager_GetJobNotFound(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	_, err := manager.GetJob("missing")
	if !errors.Is(err, hmerrors.ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
}

func TestJobManager_ExecuteJob(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeBatchMatch, "", nil)

	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		manager.UpdateJobProgress(jobID, 1, 2, "Halfway done")
		manager.SetJobResults(jobID, []model.MatchResponse{{Matcher: model.MatcherAND, HitIDs: []int{1, 1}, Hits: 1}})
		manager.UpdateJobProgress(jobID, 2, 2, "Completed")
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	job := waitForStatus(t, manager, jobID)

	if job.Status != model.JobStatusCompleted {
		t.Errorf("Expected job status %s, got %s", model.JobStatusCompleted, job.Status)
	}
	if job.Progress == nil || job.Progress.Current != 2 || job.Progress.Total != 2 || job.Progress.Percent != 100 {
		t.Errorf("Unexpected progress: %+v", job.Progress)
	}
	if len(job.Results) != 1 || job.Results[0].Hits != 1 {
		t.Errorf("Unexpected results: %+v", job.Results)
	}

	metrics := manager.GetMetrics()
	if metrics.RequestsMatched != 1 || metrics.TokensMatched != 2 || metrics.HitsFound != 1 {
		t.Errorf("Unexpected matching counters: %+v", metrics)
	}
	if metrics.JobsCompleted != 1 {
		t.Errorf("Expected 1 completed job, got %d", metrics.JobsCompleted)
	}

	// executing twice is rejected
	if err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error { return nil }); err == nil {
		t.Error("Expected error when executing a finished job")
	}
}

func TestJobManager_FailedJob(t *testing.T) {
	manager := NewManager(1)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeBatchMatch, "", nil)
	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return errors.New("boom")
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	job := waitForStatus(t, manager, jobID)
	if job.Status != model.JobStatusFailed {
		t.Errorf("Expected job status %s, got %s", model.JobStatusFailed, job.Status)
	}
	if job.Error != "boom" {
		t.Errorf("Expected error 'boom', got %q", job.Error)
	}

	metrics := manager.GetMetrics()
	if metrics.JobsFailed != 1 {
		t.Errorf("Expected 1 failed job, got %d", metrics.JobsFailed)
	}
	if manager.GetJobSuccessRate() != 0 {
		t.Errorf("Expected success rate 0, got %v", manager.GetJobSuccessRate())
	}
}

func TestJobManager_ListJobs(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	manager.CreateJob(model.JobTypeBatchMatch, "a", nil)
	manager.CreateJob(model.JobTypeBatchMatch, "a", nil)
	manager.CreateJob(model.JobTypeBatchMatch, "b", nil)

	if got := len(manager.ListJobs("a", nil)); got != 2 {
		t.Errorf("Expected 2 jobs for label 'a', got %d", got)
	}
	if got := len(manager.ListJobs("", nil)); got != 3 {
		t.Errorf("Expected 3 jobs in total, got %d", got)
	}

	all := manager.ListJobs("", nil)
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.Before(all[i-1].CreatedAt) {
			t.Errorf("Jobs are not ordered by creation time")
		}
	}

	running := model.JobStatusRunning
	if got := len(manager.ListJobs("", &running)); got != 0 {
		t.Errorf("Expected no running jobs, got %d", got)
	}
}

func TestJobManager_StopCancelsRunningJob(t *testing.T) {
	manager := NewManager(1)
	manager.Start()

	jobID := manager.CreateJob(model.JobTypeBatchMatch, "", nil)
	started := make(chan struct{})
	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	<-started
	manager.Stop()

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get job: %v", err)
	}
	if job.Status != model.JobStatusCancelled {
		t.Errorf("Expected job status %s, got %s", model.JobStatusCancelled, job.Status)
	}
	if got := manager.GetMetrics().JobsCancelled; got != 1 {
		t.Errorf("Expected 1 cancelled job, got %d", got)
	}
}
