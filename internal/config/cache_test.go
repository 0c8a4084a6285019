package config

import (
	"testing"
	"time"
)

func TestParseMethods(t *testing.T) {
	m := parseMethods(" get ,POST,,head")
	for _, want := range []string{"GET", "POST", "HEAD"} {
		if !m[want] {
			t.Errorf("method %s missing from %v", want, m)
		}
	}
	if len(m) != 3 {
		t.Errorf("len = %d, want 3", len(m))
	}
}

func TestParseDurFallsBack(t *testing.T) {
	if d := parseDur("nonsense"); d != time.Second {
		t.Errorf("parseDur fallback = %s, want 1s", d)
	}
	if d := parseDur("45s"); d != 45*time.Second {
		t.Errorf("parseDur = %s, want 45s", d)
	}
}

func TestRateLimitConfigSanitized(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("ttl = %s, want at least 5x refill interval", cfg.TTL)
	}
}
