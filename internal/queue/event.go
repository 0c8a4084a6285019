// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// SpotCreatedEvent is published after a spot or hiking spot is created. It
// carries enough context for downstream consumers (activity log, analytics)
// without going back to the primary database. Kind is "spot" or
// "hiking_spot".
type SpotCreatedEvent struct {
	Kind         string  `json:"kind"`
	RecordID     uint64  `json:"record_id"`
	Name         string  `json:"name"`
	Region       string  `json:"region,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	CreatorID    uint64  `json:"creator_id"`
	CreatorEmail string  `json:"creator_email"`
	ImageCount   int     `json:"image_count"`
	CreatedAt    string  `json:"created_at"`
}
