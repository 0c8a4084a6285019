package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"trailspot/internal/metrics"
	"trailspot/internal/security"
)

func TestCreateSpotRequiresIdentity(t *testing.T) {
	h := NewSpotHandler(nil, nil, security.NewSanitizer(), metrics.NewCollector())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/spots/create", nil)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGetSpotRejectsBadID(t *testing.T) {
	h := NewSpotHandler(nil, nil, security.NewSanitizer(), metrics.NewCollector())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/spots/get/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBindRecordPartReadsMultipartField(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("spot", `{"name":"Lake View","latitude":46.5,"longitude":6.6}`); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/spots/create", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got spotReq
	if err := bindRecordPart(c, &got); err != nil {
		t.Fatalf("bindRecordPart: %v", err)
	}
	if got.Name != "Lake View" || got.Latitude != 46.5 || got.Longitude != 6.6 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestValidCoords(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{0, -181, false},
	}
	for _, tc := range cases {
		if got := validCoords(tc.lat, tc.lon); got != tc.want {
			t.Errorf("validCoords(%v, %v) = %v, want %v", tc.lat, tc.lon, got, tc.want)
		}
	}
}
