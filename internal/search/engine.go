package search

import (
	"sort"
	"strings"

	"trailspot/internal/model"
)

const doneMessage = "search completed"

// Spots runs the pipeline over a snapshot of spot records: text filter,
// creator filter, geo-radius filter, sort, paginate. The input slice is
// never mutated.
func Spots(records []model.Spot, q Query) Response[model.Spot] {
	text := strings.ToLower(q.text())
	creator := strings.TrimSpace(q.CreatorEmail)

	kept := make([]model.Spot, 0, len(records))
	for _, s := range records {
		if text != "" && !containsFold(s.Name, text) && !containsFold(s.Description, text) {
			continue
		}
		if creator != "" && !strings.EqualFold(s.CreatorEmail, creator) {
			continue
		}
		if q.hasCenter() && Haversine(*q.Latitude, *q.Longitude, s.Latitude, s.Longitude) > *q.Radius {
			continue
		}
		kept = append(kept, s)
	}

	sortSpots(kept, q)
	pageItems, page, totalPages := paginate(kept, q)

	return Response[model.Spot]{
		Message:      doneMessage,
		Results:      pageItems,
		TotalResults: len(kept),
		Page:         page,
		TotalPages:   totalPages,
		Metadata:     metadataFrom(q),
	}
}

// HikingSpots runs the pipeline over a snapshot of hiking spot records.
// Hiking spots gain the region, difficulty and path-distance filters; the
// geo filter measures from the route's start point.
func HikingSpots(records []model.HikingSpot, q Query) Response[model.HikingSpot] {
	text := strings.ToLower(q.text())
	creator := strings.TrimSpace(q.CreatorEmail)
	region := strings.TrimSpace(q.Region)

	kept := make([]model.HikingSpot, 0, len(records))
	for _, s := range records {
		if text != "" && !containsFold(s.Name, text) && !containsFold(s.Description, text) && !containsFold(s.Region, text) {
			continue
		}
		if creator != "" && !strings.EqualFold(s.CreatorEmail, creator) {
			continue
		}
		if region != "" && !strings.EqualFold(s.Region, region) {
			continue
		}
		if q.MinDifficulty != nil && s.DifficultyLevel < *q.MinDifficulty {
			continue
		}
		if q.MaxDifficulty != nil && s.DifficultyLevel > *q.MaxDifficulty {
			continue
		}
		if q.MinDistance != nil && s.Distance < *q.MinDistance {
			continue
		}
		if q.MaxDistance != nil && s.Distance > *q.MaxDistance {
			continue
		}
		if q.hasCenter() && Haversine(*q.Latitude, *q.Longitude, s.StartLatitude, s.StartLongitude) > *q.Radius {
			continue
		}
		kept = append(kept, s)
	}

	sortHikingSpots(kept, q)
	pageItems, page, totalPages := paginate(kept, q)

	return Response[model.HikingSpot]{
		Message:      doneMessage,
		Results:      pageItems,
		TotalResults: len(kept),
		Page:         page,
		TotalPages:   totalPages,
		Metadata:     metadataFrom(q),
	}
}

// containsFold reports whether needle (already lower-cased) occurs in v.
func containsFold(v, needle string) bool {
	return strings.Contains(strings.ToLower(v), needle)
}

func sortSpots(spots []model.Spot, q Query) {
	var less func(a, b model.Spot) bool
	switch strings.ToLower(strings.TrimSpace(q.SortBy)) {
	case "distance":
		if q.Latitude != nil && q.Longitude != nil {
			lat, lon := *q.Latitude, *q.Longitude
			less = func(a, b model.Spot) bool {
				return Haversine(lat, lon, a.Latitude, a.Longitude) <
					Haversine(lat, lon, b.Latitude, b.Longitude)
			}
		} else {
			// no center to measure from, fall back to the name order
			less = spotNameLess
		}
	default:
		less = spotNameLess
	}
	sortStable(spots, less, descending(q))
}

func sortHikingSpots(spots []model.HikingSpot, q Query) {
	var less func(a, b model.HikingSpot) bool
	switch strings.ToLower(strings.TrimSpace(q.SortBy)) {
	case "distance":
		if q.Latitude != nil && q.Longitude != nil {
			lat, lon := *q.Latitude, *q.Longitude
			less = func(a, b model.HikingSpot) bool {
				return Haversine(lat, lon, a.StartLatitude, a.StartLongitude) <
					Haversine(lat, lon, b.StartLatitude, b.StartLongitude)
			}
		} else {
			// without a center "distance" means the path length itself
			less = hikingParcoursLess
		}
	case "parcours":
		less = hikingParcoursLess
	default:
		less = hikingNameLess
	}
	sortStable(spots, less, descending(q))
}

func spotNameLess(a, b model.Spot) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

func hikingNameLess(a, b model.HikingSpot) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

func hikingParcoursLess(a, b model.HikingSpot) bool {
	return a.Distance < b.Distance
}

func descending(q Query) bool {
	return strings.EqualFold(strings.TrimSpace(q.SortOrder), "desc")
}

func sortStable[T any](items []T, less func(a, b T) bool, desc bool) {
	if desc {
		inner := less
		less = func(a, b T) bool { return inner(b, a) }
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// paginate slices one page out of the filtered, sorted set and returns the
// slice together with the resolved page index and the total page count.
func paginate[T any](items []T, q Query) ([]T, int, int) {
	page, size := q.page(), q.size()
	total := len(items)
	totalPages := (total + size - 1) / size

	start := page * size
	if start >= total {
		return []T{}, page, totalPages
	}
	end := start + size
	if end > total {
		end = total
	}
	return items[start:end], page, totalPages
}
