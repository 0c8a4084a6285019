package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"trailspot/internal/metrics"
	"trailspot/internal/model"
	"trailspot/internal/search"
)

type fakeSpotLister struct {
	spots []model.Spot
	err   error
}

func (f *fakeSpotLister) ListAll(context.Context) ([]model.Spot, error) { return f.spots, f.err }

type fakeHikingLister struct {
	spots []model.HikingSpot
	err   error
}

func (f *fakeHikingLister) ListAll(context.Context) ([]model.HikingSpot, error) {
	return f.spots, f.err
}

func newSearchContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/spots/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSearchSpotsEnvelope(t *testing.T) {
	lister := &fakeSpotLister{spots: []model.Spot{
		{ID: 1, Name: "Alpine Ridge"},
		{ID: 2, Name: "Beach Cove"},
		{ID: 3, Name: "Alps Lookout"},
	}}
	h := NewSearchHandler(lister, &fakeHikingLister{}, metrics.NewCollector())

	c, rec := newSearchContext(t, `{"query":"alp"}`)
	if err := h.SearchSpots(c); err != nil {
		t.Fatalf("SearchSpots: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp search.Response[model.Spot]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "search completed" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.TotalResults != 2 || len(resp.Results) != 2 {
		t.Fatalf("got %d results (total %d), want 2", len(resp.Results), resp.TotalResults)
	}
	if resp.Results[0].Name != "Alpine Ridge" || resp.Results[1].Name != "Alps Lookout" {
		t.Errorf("unexpected order: %q, %q", resp.Results[0].Name, resp.Results[1].Name)
	}
	if resp.Metadata.Query != "alp" {
		t.Errorf("metadata query = %q", resp.Metadata.Query)
	}
}

func TestSearchSpotsListError(t *testing.T) {
	lister := &fakeSpotLister{err: errors.New("db down")}
	h := NewSearchHandler(lister, &fakeHikingLister{}, metrics.NewCollector())

	c, rec := newSearchContext(t, `{}`)
	if err := h.SearchSpots(c); err != nil {
		t.Fatalf("SearchSpots: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestSearchSpotsBadBody(t *testing.T) {
	h := NewSearchHandler(&fakeSpotLister{}, &fakeHikingLister{}, metrics.NewCollector())

	c, rec := newSearchContext(t, `{"query":`)
	if err := h.SearchSpots(c); err != nil {
		t.Fatalf("SearchSpots: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchHikingSpotsFiltersRegion(t *testing.T) {
	lister := &fakeHikingLister{spots: []model.HikingSpot{
		{ID: 1, Name: "Ridge Trail", Region: "Alps", DifficultyLevel: 3},
		{ID: 2, Name: "Shore Walk", Region: "Coast", DifficultyLevel: 1},
	}}
	h := NewSearchHandler(&fakeSpotLister{}, lister, metrics.NewCollector())

	c, rec := newSearchContext(t, `{"region":"alps"}`)
	if err := h.SearchHikingSpots(c); err != nil {
		t.Fatalf("SearchHikingSpots: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp search.Response[model.HikingSpot]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalResults != 1 || resp.Results[0].Name != "Ridge Trail" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}
