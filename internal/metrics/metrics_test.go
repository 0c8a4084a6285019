package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCollectorExposesCounters(t *testing.T) {
	c := NewCollector()
	c.RecordSearch("spot")
	c.RecordSearch("spot")
	c.RecordCreated("hiking_spot")
	c.RecordAuthFailure()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	c.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		`trailspot_searches_total{kind="spot"} 2`,
		`trailspot_records_created_total{kind="hiking_spot"} 1`,
		`trailspot_auth_failures_total 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
