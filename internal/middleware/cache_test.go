package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"trailspot/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"message":"search completed"}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("header = %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q", gotBody)
	}
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, {0, 0, 0, 200, 0, 0, 0, 99}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decode accepted %v", bs)
		}
	}
}

func TestCacheKeyDependsOnBody(t *testing.T) {
	e := echo.New()
	newCtx := func(body string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/spots/search", strings.NewReader(body))
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/v1/spots/search")
		return c
	}

	a := cacheKey("cache", newCtx(""), []byte(`{"query":"alp"}`))
	b := cacheKey("cache", newCtx(""), []byte(`{"query":"lake"}`))
	if a == b {
		t.Error("different bodies must not share a cache key")
	}
	if again := cacheKey("cache", newCtx(""), []byte(`{"query":"alp"}`)); again != a {
		t.Error("identical requests must share a cache key")
	}
}

func TestResponseCachePassThroughWithoutRedis(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"POST": true}}
	mw := ResponseCache(cfg, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/spots/search", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if !called {
		t.Fatal("handler not reached without a Redis client")
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Errorf("pass-through must not set X-Cache, got %q", rec.Header().Get("X-Cache"))
	}
}
