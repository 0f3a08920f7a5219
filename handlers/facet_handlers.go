// api/handlers/facet_handlers.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"marketplace/api/facets"
	"marketplace/api/logger"
	"marketplace/api/middleware"
	"marketplace/api/models"
)

const genericFacetError = "Failed to compute filter counts"

// FacetComputer is satisfied by *facets.Aggregator.
type FacetComputer interface {
	Compute(ctx context.Context, categoryID string) (*models.FacetResponse, error)
}

type FacetHandlers struct {
	Aggregator   FacetComputer
	QueryTimeout time.Duration
	Log          *logger.Logger
}

func NewFacetHandlers(aggregator FacetComputer, queryTimeout time.Duration, log *logger.Logger) *FacetHandlers {
	return &FacetHandlers{
		Aggregator:   aggregator,
		QueryTimeout: queryTimeout,
		Log:          log,
	}
}

// GetFilterCounts serves GET /api/filter-counts?category_id=<id>.
// A missing or "all" category_id means the whole catalog.
func (h *FacetHandlers) GetFilterCounts(c *gin.Context) {
	categoryID := strings.TrimSpace(c.Query("category_id"))
	if categoryID == models.AllCategories {
		categoryID = ""
	}

	log := h.Log.With(
		"request_id", c.GetString(middleware.RequestIDKey),
		"category_id", categoryID,
	)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.QueryTimeout)
	defer cancel()

	resp, err := h.Aggregator.Compute(ctx, categoryID)
	if err != nil {
		log.Error("Error computing filter counts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage(err)})
		return
	}

	// Encode before writing so an unencodable response still gets the error
	// envelope instead of a 200 with an empty body.
	body, err := json.Marshal(resp)
	if err != nil {
		log.Error("Error encoding filter counts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericFacetError})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Preflight answers browser CORS preflights. The CORS middleware sets the
// headers.
func (h *FacetHandlers) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

func errorMessage(err error) string {
	var qerr *facets.QueryError
	if errors.As(err, &qerr) {
		return qerr.Error()
	}
	return genericFacetError
}
