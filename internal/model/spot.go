package model

// Spot is a single geo-tagged point of interest. A spot is owned by the
// account that created it; only that account (or an admin) may modify or
// delete it. CreatorEmail and CreatorName are denormalized from the users
// table when records are loaded so the search pipeline and response
// projection never walk back into the account graph.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name, searched by the text filter.
//  Description  – free text, searched by the text filter.
//  Latitude     – reference point latitude in degrees.
//  Longitude    – reference point longitude in degrees.
//  ImageURLs    – opaque image references (local paths or provider URLs).
//  CreatorID    – owning account id (spots.creator_id).
//  CreatorEmail – owner email, used by the creator filter. Not serialized.
//  CreatorName  – owner lastname, shown as "creator" in responses.
type Spot struct {
	ID           uint64   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	ImageURLs    []string `json:"imageUrls"`
	CreatorID    uint64   `json:"-"`
	CreatorEmail string   `json:"-"`
	CreatorName  string   `json:"creator"`
}
