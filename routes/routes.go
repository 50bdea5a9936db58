package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-healthai/cronjobs"
	"go-healthai/handlers"
	"go-healthai/hospitals"
	"go-healthai/metrics"
	"go-healthai/middleware"
	"go-healthai/processor"
)

// Dependencies are the wired services the router exposes.
type Dependencies struct {
	Pipeline    *processor.Pipeline
	Hospitals   *hospitals.Directory
	Places      handlers.PlacesSearcher
	Probe       *cronjobs.ModelProbe
	RateLimiter *middleware.IPRateLimiter

	ClientURL      string
	RequestTimeout time.Duration
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Logger(),
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Metrics(),
		cors.New(corsConfig(deps.ClientURL)),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "HealthAI Nigeria triage service",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// api routes
	api := r.Group("/api")
	{
		chat := []gin.HandlerFunc{handlers.Chat(deps.Pipeline, deps.RequestTimeout)}
		if deps.RateLimiter != nil {
			chat = append([]gin.HandlerFunc{deps.RateLimiter.Middleware()}, chat...)
		}
		api.POST("/chat", chat...)

		api.GET("/hospitals", handlers.RecommendHospitals(deps.Hospitals))
		api.GET("/hospitals/nearby", handlers.NearbyHospitals(deps.Places))
		api.GET("/emergency/offline", handlers.OfflineEmergency)
		api.GET("/models/status", handlers.ModelStatus(deps.Probe))
		api.GET("/health", handlers.Health(deps.Pipeline.Configured, deps.Hospitals.Len()))
	}

	return r
}

func corsConfig(clientURL string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if clientURL == "" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{clientURL}
	}
	return cfg
}
