// Package queue defines message payloads exchanged over the message broker.
package queue

// ShowBookedEvent is published when a show is successfully booked.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ShowBookedEvent struct {
	VenueID    uint64 `json:"venue_id"`
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	StartTime  string `json:"start_time"`
	BookedAt   string `json:"booked_at"`
}
