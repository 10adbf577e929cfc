package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-hit-matcher/internal/engine"
	internalErrors "github.com/gcbaptista/go-hit-matcher/internal/errors"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.matcher.GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs, filtered by label and status
func (api *API) ListJobsHandler(c *gin.Context) {
	label := c.Query("label")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobs := api.matcher.ListJobs(label, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"label": label,
		"total": len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	if engineWithMetrics, ok := api.matcher.(*engine.Engine); ok {
		// Get metrics (already returns a copy without mutex)
		metrics := engineWithMetrics.GetJobMetrics()

		// Add computed metrics
		response := gin.H{
			"metrics":          metrics,
			"success_rate":     engineWithMetrics.GetJobSuccessRate(),
			"current_workload": engineWithMetrics.GetCurrentWorkload(),
		}

		c.JSON(http.StatusOK, response)
	} else {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job metrics not supported by this engine"})
	}
}
