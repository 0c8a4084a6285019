package queue

import (
	"strings"
	"testing"
)

func TestFormatEvent(t *testing.T) {
	line := formatEvent(SpotCreatedEvent{
		Kind:         "hiking_spot",
		RecordID:     7,
		Name:         "Alps Loop",
		Region:       "Alps",
		Latitude:     45.0,
		Longitude:    6.0,
		CreatorEmail: "alice@example.com",
		ImageCount:   2,
		CreatedAt:    "2025-03-01T12:00:00Z",
	})
	for _, want := range []string{"hiking_spot created", "id=7", `name="Alps Loop"`, "region=Alps", "creator=alice@example.com", "images=2"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("log line must end with newline")
	}
}

func TestFormatEventEmptyRegion(t *testing.T) {
	line := formatEvent(SpotCreatedEvent{Kind: "spot", Name: "Pier"})
	if !strings.Contains(line, "region=-") {
		t.Errorf("line %q should render empty region as -", line)
	}
}
