package model

// HikingSpot is a hiking route with a start and end point. Its reference
// point for geo-radius filtering is the start of the route. Distance is the
// length of the path itself in kilometers, distinct from the computed
// distance to a search center.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – display name, searched by the text filter.
//  Description     – free text, searched by the text filter.
//  Region          – textual region name (text filter + exact region filter).
//  Distance        – path length in kilometers ("parcours" sort key).
//  DifficultyLevel – difficulty rating 1 (easy) to 5 (hard).
//  StartLatitude   – route start latitude, the geo filter reference point.
//  StartLongitude  – route start longitude.
//  EndLatitude     – route end latitude.
//  EndLongitude    – route end longitude.
//  ImageURLs       – opaque image references.
//  CreatorID       – owning account id (hiking_spots.creator_id).
//  CreatorEmail    – owner email for the creator filter. Not serialized.
//  CreatorName     – owner lastname, shown as "creatorName" in responses.
type HikingSpot struct {
	ID              uint64   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Region          string   `json:"region"`
	Distance        float64  `json:"distance"`
	DifficultyLevel int      `json:"difficultyLevel"`
	StartLatitude   float64  `json:"startLatitude"`
	StartLongitude  float64  `json:"startLongitude"`
	EndLatitude     float64  `json:"endLatitude"`
	EndLongitude    float64  `json:"endLongitude"`
	ImageURLs       []string `json:"imageUrls"`
	CreatorID       uint64   `json:"-"`
	CreatorEmail    string   `json:"-"`
	CreatorName     string   `json:"creatorName"`
}
