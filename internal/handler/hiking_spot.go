package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"trailspot/internal/metrics"
	"trailspot/internal/middleware"
	"trailspot/internal/model"
	"trailspot/internal/queue"
	"trailspot/internal/repository"
	"trailspot/internal/security"
	"trailspot/internal/service"
	"trailspot/internal/storage"
)

// HikingSpotHandler covers CRUD for hiking routes.
type HikingSpotHandler struct {
	Hiking   *repository.HikingSpotRepo
	Store    storage.ImageStore
	Sanitize *security.Sanitizer
	Metrics  *metrics.Collector
}

func NewHikingSpotHandler(r *repository.HikingSpotRepo, st storage.ImageStore, sz *security.Sanitizer, m *metrics.Collector) *HikingSpotHandler {
	return &HikingSpotHandler{Hiking: r, Store: st, Sanitize: sz, Metrics: m}
}

type hikingSpotReq struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Region          string  `json:"region"`
	Distance        float64 `json:"distance"`
	DifficultyLevel int     `json:"difficultyLevel"`
	StartLatitude   float64 `json:"startLatitude"`
	StartLongitude  float64 `json:"startLongitude"`
	EndLatitude     float64 `json:"endLatitude"`
	EndLongitude    float64 `json:"endLongitude"`
}

func (h *HikingSpotHandler) cleanAndValidate(req *hikingSpotReq) string {
	req.Name = h.Sanitize.Clean(req.Name)
	req.Description = h.Sanitize.Clean(req.Description)
	req.Region = h.Sanitize.Clean(req.Region)
	switch {
	case req.Name == "":
		return "name required"
	case !validCoords(req.StartLatitude, req.StartLongitude):
		return "invalid start coordinates"
	case !validCoords(req.EndLatitude, req.EndLongitude):
		return "invalid end coordinates"
	case req.Distance < 0:
		return "distance must not be negative"
	case req.DifficultyLevel < 1 || req.DifficultyLevel > 5:
		return "difficulty must be between 1 and 5"
	}
	return ""
}

// Create stores a new hiking route owned by the caller.
func (h *HikingSpotHandler) Create(c echo.Context) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req hikingSpotReq
	if err := bindRecordPart(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := h.cleanAndValidate(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	urls, err := saveUploads(ctx, c, h.Store, "hiking")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}

	spot := model.HikingSpot{
		Name:            req.Name,
		Description:     req.Description,
		Region:          req.Region,
		Distance:        req.Distance,
		DifficultyLevel: req.DifficultyLevel,
		StartLatitude:   req.StartLatitude,
		StartLongitude:  req.StartLongitude,
		EndLatitude:     req.EndLatitude,
		EndLongitude:    req.EndLongitude,
		ImageURLs:       urls,
		CreatorID:       id.ID,
		CreatorEmail:    id.Email,
	}
	if err := h.Hiking.Create(ctx, &spot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hiking spot failed"})
	}

	h.Metrics.RecordCreated("hiking_spot")
	_ = service.PublishSpotCreated(ctx, queue.SpotCreatedEvent{
		Kind:         "hiking_spot",
		RecordID:     spot.ID,
		Name:         spot.Name,
		Region:       spot.Region,
		Latitude:     spot.StartLatitude,
		Longitude:    spot.StartLongitude,
		CreatorID:    id.ID,
		CreatorEmail: id.Email,
		ImageCount:   len(urls),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, spot)
}

// Get returns one hiking route by id.
func (h *HikingSpotHandler) Get(c echo.Context) error {
	sid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	spot, err := h.Hiking.GetByID(ctx, sid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hiking spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, spot)
}

// GetAll returns every hiking route.
func (h *HikingSpotHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	spots, err := h.Hiking.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, spots)
}

// Update rewrites a hiking route. Owner or admin only.
func (h *HikingSpotHandler) Update(c echo.Context) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	existing, err := h.Hiking.GetByID(ctx, sid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hiking spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !id.CanModify(existing.CreatorEmail) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req hikingSpotReq
	if err := bindRecordPart(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := h.cleanAndValidate(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	urls, err := saveUploads(ctx, c, h.Store, "hiking")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Region = req.Region
	existing.Distance = req.Distance
	existing.DifficultyLevel = req.DifficultyLevel
	existing.StartLatitude = req.StartLatitude
	existing.StartLongitude = req.StartLongitude
	existing.EndLatitude = req.EndLatitude
	existing.EndLongitude = req.EndLongitude
	existing.ImageURLs = append(existing.ImageURLs, urls...)

	if err := h.Hiking.Update(ctx, &existing); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hiking spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, existing)
}

// Delete removes a hiking route. Owner or admin only.
func (h *HikingSpotHandler) Delete(c echo.Context) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Hiking.GetByID(ctx, sid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hiking spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !id.CanModify(existing.CreatorEmail) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Hiking.Delete(ctx, sid); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hiking spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
