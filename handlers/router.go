package handlers

import (
	"github.com/gin-gonic/gin"

	"marketplace/api/logger"
	"marketplace/api/middleware"
)

// NewRouter wires the HTTP surface. health may be nil.
func NewRouter(facetHandlers *FacetHandlers, health *HealthHandlers, corsOrigin string, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(corsOrigin))

	if health != nil {
		r.GET("/health", health.HealthCheck)
	}

	api := r.Group("/api")
	{
		api.GET("/filter-counts", facetHandlers.GetFilterCounts)
		api.OPTIONS("/filter-counts", facetHandlers.Preflight)
	}
	return r
}
