package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"trailspot/internal/metrics"
	"trailspot/internal/model"
	"trailspot/internal/search"
)

// SpotLister loads the full spot snapshot the search engine filters.
type SpotLister interface {
	ListAll(ctx context.Context) ([]model.Spot, error)
}

// HikingSpotLister loads the full hiking route snapshot.
type HikingSpotLister interface {
	ListAll(ctx context.Context) ([]model.HikingSpot, error)
}

// SearchHandler runs the in-memory search pipeline over a fresh snapshot
// of the records. The engine is pure; this handler owns the I/O around it.
type SearchHandler struct {
	Spots   SpotLister
	Hiking  HikingSpotLister
	Metrics *metrics.Collector
}

func NewSearchHandler(s SpotLister, h HikingSpotLister, m *metrics.Collector) *SearchHandler {
	return &SearchHandler{Spots: s, Hiking: h, Metrics: m}
}

// SearchSpots filters, sorts and paginates plain spots.
func (h *SearchHandler) SearchSpots(c echo.Context) error {
	var q search.Query
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	records, err := h.Spots.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	h.Metrics.RecordSearch("spot")
	return c.JSON(http.StatusOK, search.Spots(records, q))
}

// SearchHikingSpots filters, sorts and paginates hiking routes.
func (h *SearchHandler) SearchHikingSpots(c echo.Context) error {
	var q search.Query
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	records, err := h.Hiking.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	h.Metrics.RecordSearch("hiking_spot")
	return c.JSON(http.StatusOK, search.HikingSpots(records, q))
}
