package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-hit-matcher/model"
)

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	if api.analytics == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Analytics not enabled"})
		return
	}

	dashboard, err := api.analytics.GetDashboardData()
	if err != nil {
		SendInternalError(c, "retrieve analytics data", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// HealthCheckHandler reports liveness along with the matchers served and the
// settings requests are matched with
func (api *API) HealthCheckHandler(c *gin.Context) {
	settings := api.matcher.Settings()
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    "go-hit-matcher",
		"matchers":   []model.MatcherType{model.MatcherProximity, model.MatcherAND, model.MatcherSequence},
		"workers":    settings.Workers,
		"max_tokens": settings.MaxTokens,
		"timestamp":  fmt.Sprintf("%d", time.Now().Unix()),
	})
}
