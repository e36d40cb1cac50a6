package http

import (
	"github.com/gin-gonic/gin"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/config"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/observability"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/", handler.Index)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	// Extension clients poll this on every product page, so it gets its own limiter
	compare := router.Group("/")
	compare.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	compare.POST("/compare", handler.ComparePrices)

	return router
}
