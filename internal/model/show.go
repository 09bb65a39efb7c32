package model

import "time"

// Show represents a scheduled performance linking one venue, one
// artist and a start time.  The three fields together form the
// composite primary key, so a venue/artist pair can have at most one
// show at a given start time.  Shows are created through the booking
// workflow and are never edited or deleted individually; they go away
// only when their venue or artist is deleted.
//
// Fields:
//  VenueID   – venue hosting the show (shows.venue_id).
//  ArtistID  – artist performing (shows.artist_id).
//  StartTime – when the show begins, stored as DATETIME in UTC.
type Show struct {
	VenueID   uint64    // shows.venue_id
	ArtistID  uint64    // shows.artist_id
	StartTime time.Time // shows.start_time
}
