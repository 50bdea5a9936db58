package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-healthai/cronjobs"
)

// ModelStatus handles GET /api/models/status.
func ModelStatus(probe *cronjobs.ModelProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		if probe == nil {
			c.JSON(http.StatusOK, gin.H{"models": []cronjobs.ModelStatus{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"models": probe.Status()})
	}
}

// Health handles GET /api/health. It reports degraded, still with 200, when
// no model is configured since offline fallbacks keep working.
func Health(modelsConfigured func() bool, hospitalCount int) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		if !modelsConfigured() {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"hospitals": hospitalCount,
			"timestamp": time.Now().UTC(),
		})
	}
}
