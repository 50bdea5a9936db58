package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-healthai/detection"
	"go-healthai/metrics"
	"go-healthai/offline"
	"go-healthai/types"
)

// OfflineEmergency handles GET /api/emergency/offline. The client caches the
// data set for use without a network; symptoms, when given, also render the
// offline reply text.
func OfflineEmergency(c *gin.Context) {
	resp := gin.H{"data": offline.Data()}

	if symptoms := c.Query("symptoms"); symptoms != "" {
		lang := detection.DetectLanguage(symptoms, types.Language(c.Query("language")))
		resp["response"] = offline.GenerateOfflineEmergencyResponse(symptoms, lang)
		resp["isEmergency"] = offline.IsEmergency(symptoms)
		metrics.RecordOfflineFallback("requested")
	}

	c.JSON(http.StatusOK, resp)
}
