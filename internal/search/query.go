// Package search implements the in-memory multi-criteria search pipeline for
// spots and hiking spots: text, creator, region, difficulty, path-distance
// and geo-radius filtering, followed by sorting and pagination. Every call is
// a pure transformation over a caller-supplied snapshot of records; the
// package performs no I/O and keeps no state between calls.
package search

import "strings"

// Default pagination applied when the request leaves page/size unset or sends
// values that make no sense (negative page, zero size). Out-of-range pages
// are not an error either; they yield an empty result set.
const (
	DefaultPage = 0
	DefaultSize = 20
)

// Query carries every recognized search option. Numeric filters are pointers
// so "absent" and "zero" stay distinguishable; text filters treat a blank
// string as absent, which is exactly the test the filters apply. Filters
// that only apply to one record shape are ignored for the other.
type Query struct {
	// Free-text query matched case-insensitively against name, description
	// and (for hiking spots) region.
	Query string `json:"query"`

	// Geo-radius filter. Applied only when all three are present.
	// Radius is in meters.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    *float64 `json:"radius"`

	// Region is a case-insensitive exact match (hiking spots only).
	Region string `json:"region"`

	// MinRating is accepted and echoed but not applied to any filter;
	// the field is reserved for spot ratings that do not exist yet.
	MinRating *float64 `json:"minRating"`

	// CreatorEmail is a case-insensitive exact match against the record
	// creator's email.
	CreatorEmail string `json:"creatorEmail"`

	// Difficulty bounds, inclusive, hiking spots only.
	MinDifficulty *int `json:"minDifficulty"`
	MaxDifficulty *int `json:"maxDifficulty"`

	// Path length bounds in kilometers, inclusive, hiking spots only.
	MinDistance *float64 `json:"minDistance"`
	MaxDistance *float64 `json:"maxDistance"`

	// Pagination, page is 0-based.
	Page *int `json:"page"`
	Size *int `json:"size"`

	// SortBy is one of "name" (default), "distance", "parcours".
	// SortOrder is "asc" (default) or "desc".
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// hasCenter reports whether the query carries a complete geo-radius filter.
func (q Query) hasCenter() bool {
	return q.Latitude != nil && q.Longitude != nil && q.Radius != nil
}

// text returns the trimmed free-text query, "" when absent.
func (q Query) text() string { return strings.TrimSpace(q.Query) }

// page and size resolve pagination with defaults, clamping nonsense values.
func (q Query) page() int {
	if q.Page != nil && *q.Page > 0 {
		return *q.Page
	}
	return DefaultPage
}

func (q Query) size() int {
	if q.Size != nil && *q.Size > 0 {
		return *q.Size
	}
	return DefaultSize
}

// Metadata echoes the search parameters back to the client for display.
// RadiusKm converts the request's meter radius to kilometers.
type Metadata struct {
	Query           string   `json:"query,omitempty"`
	CenterLatitude  *float64 `json:"centerLatitude,omitempty"`
	CenterLongitude *float64 `json:"centerLongitude,omitempty"`
	RadiusKm        *float64 `json:"radiusKm,omitempty"`
	Region          string   `json:"region,omitempty"`
	CreatorEmail    string   `json:"creatorEmail,omitempty"`
}

// Response is the envelope returned by every search: the page of results,
// the pre-pagination match count, pagination bookkeeping and an echo of the
// search parameters.
type Response[T any] struct {
	Message      string   `json:"message"`
	Results      []T      `json:"results"`
	TotalResults int      `json:"totalResults"`
	Page         int      `json:"page"`
	TotalPages   int      `json:"totalPages"`
	Metadata     Metadata `json:"metadata"`
}

func metadataFrom(q Query) Metadata {
	m := Metadata{
		Query:           q.text(),
		CenterLatitude:  q.Latitude,
		CenterLongitude: q.Longitude,
		Region:          strings.TrimSpace(q.Region),
		CreatorEmail:    strings.TrimSpace(q.CreatorEmail),
	}
	if q.Radius != nil {
		km := *q.Radius / 1000
		m.RadiusKm = &km
	}
	return m
}
