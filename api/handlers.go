package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-hit-matcher/services"
)

// API holds dependencies for API handlers, primarily the match service.
type API struct {
	matcher   services.MatchService
	analytics services.MatchTracker
}

// NewAPI creates a new API handler structure.
func NewAPI(matcher services.MatchService, tracker services.MatchTracker) *API {
	return &API{
		matcher:   matcher,
		analytics: tracker,
	}
}

// SetupRoutes defines all the API routes for the hit matcher.
func SetupRoutes(router *gin.Engine, matcher services.MatchService, tracker services.MatchTracker) {
	apiHandler := NewAPI(matcher, tracker)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Matching routes
	matchRoutes := router.Group("/match")
	{
		matchRoutes.POST("", apiHandler.MatchHandler)             // Match a prepared token stream
		matchRoutes.POST("/text", apiHandler.TextMatchHandler)    // Tokenize documents and match query terms
		matchRoutes.POST("/_batch", apiHandler.BatchMatchHandler) // Run several match requests as a job
	}

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optionally by label and status
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}
}
