package handlers

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandlers struct {
	Dependencies map[string]Pinger
}

func NewHealthHandlers(deps map[string]Pinger) *HealthHandlers {
	return &HealthHandlers{Dependencies: deps}
}

func (h *HealthHandlers) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// Sorted so the reported dependency is stable when several are down.
	for _, name := range slices.Sorted(maps.Keys(h.Dependencies)) {
		if err := h.Dependencies[name].Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "unavailable",
				"dependency": name,
				"error":      err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
