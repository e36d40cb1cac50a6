package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/domain"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/observability"
	"github.com/farhan786-developer/pakbuyhatke-scraping-server/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparisons *usecase.ComparisonService
	aiServerURL string
	sites       []string
}

// NewHandler creates a new HTTP handler
func NewHandler(comparisons *usecase.ComparisonService, aiServerURL string, sites []string) *Handler {
	return &Handler{
		comparisons: comparisons,
		aiServerURL: aiServerURL,
		sites:       sites,
	}
}

// Index describes the service and its endpoints
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "pakbuyhatke-scraping-server",
		"version": "1.0.0",
		"endpoints": gin.H{
			"compare": "POST /compare",
			"health":  "GET /health",
			"metrics": "GET /metrics",
		},
		"sites": h.sites,
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "pakbuyhatke-scraping-server",
		"version":   "1.0.0",
		"ai_server": h.aiServerURL,
		"sites":     h.sites,
		"features": gin.H{
			"retry_logic":         true,
			"similarity_matching": true,
			"ai_title_cleaning":   true,
			"parallel_scraping":   true,
		},
	})
}

// ComparePrices handles price comparison requests
func (h *Handler) ComparePrices(c *gin.Context) {
	var req domain.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Title required",
		})
		return
	}

	observability.ComparisonsTotal.Inc()

	result, err := h.comparisons.Compare(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrTitleRequired) || errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Title required",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "comparison failed",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
