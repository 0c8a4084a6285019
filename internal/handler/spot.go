package handler

import (
	"context"
	"encoding/json"
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

// SpotHandler covers CRUD for plain point-of-interest spots.
type SpotHandler struct {
	Spots    *repository.SpotRepo
	Store    storage.ImageStore
	Sanitize *security.Sanitizer
	Metrics  *metrics.Collector
}

func NewSpotHandler(r *repository.SpotRepo, st storage.ImageStore, sz *security.Sanitizer, m *metrics.Collector) *SpotHandler {
	return &SpotHandler{Spots: r, Store: st, Sanitize: sz, Metrics: m}
}

type spotReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// bindRecordPart decodes a record either from the "spot" part of a
// multipart form (images ride alongside it in "files") or from a plain
// JSON body when no form is present.
func bindRecordPart(c echo.Context, dst any) error {
	if raw := c.FormValue("spot"); raw != "" {
		return json.Unmarshal([]byte(raw), dst)
	}
	return c.Bind(dst)
}

// saveUploads stores every "files" part and returns their URLs. A request
// without a multipart form simply has no uploads.
func saveUploads(ctx context.Context, c echo.Context, store storage.ImageStore, folder string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File["files"]
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := store.Save(ctx, fh, folder)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func validCoords(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Create stores a new spot owned by the caller, uploads its images and
// announces it on the broker.
func (h *SpotHandler) Create(c echo.Context) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req spotReq
	if err := bindRecordPart(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = h.Sanitize.Clean(req.Name)
	req.Description = h.Sanitize.Clean(req.Description)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if !validCoords(req.Latitude, req.Longitude) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	urls, err := saveUploads(ctx, c, h.Store, "spots")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}

	spot := model.Spot{
		Name:         req.Name,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ImageURLs:    urls,
		CreatorID:    id.ID,
		CreatorEmail: id.Email,
	}
	if err := h.Spots.Create(ctx, &spot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create spot failed"})
	}

	h.Metrics.RecordCreated("spot")
	_ = service.PublishSpotCreated(ctx, queue.SpotCreatedEvent{
		Kind:         "spot",
		RecordID:     spot.ID,
		Name:         spot.Name,
		Latitude:     spot.Latitude,
		Longitude:    spot.Longitude,
		CreatorID:    id.ID,
		CreatorEmail: id.Email,
		ImageCount:   len(urls),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, spot)
}

// Get returns one spot by id.
func (h *SpotHandler) Get(c echo.Context) error {
	sid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	spot, err := h.Spots.GetByID(ctx, sid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, spot)
}

// GetAll returns every spot.
func (h *SpotHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	spots, err := h.Spots.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, spots)
}

// Update rewrites a spot. Only the owner or an admin may do it; new
// uploads are appended to the existing images.
func (h *SpotHandler) Update(c echo.Context) error {
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

	existing, err := h.Spots.GetByID(ctx, sid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !id.CanModify(existing.CreatorEmail) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req spotReq
	if err := bindRecordPart(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = h.Sanitize.Clean(req.Name)
	req.Description = h.Sanitize.Clean(req.Description)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if !validCoords(req.Latitude, req.Longitude) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
	}

	urls, err := saveUploads(ctx, c, h.Store, "spots")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.ImageURLs = append(existing.ImageURLs, urls...)

	if err := h.Spots.Update(ctx, &existing); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, existing)
}

// Delete removes a spot. Only the owner or an admin may do it.
func (h *SpotHandler) Delete(c echo.Context) error {
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

	existing, err := h.Spots.GetByID(ctx, sid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !id.CanModify(existing.CreatorEmail) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Spots.Delete(ctx, sid); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
