package model

// Artist represents a performer who can be booked into shows.  An
// artist owns zero or more shows via shows.artist_id.  Genres use the
// same comma-joined encoding as venues.  Availability is an ordered
// sequence of intervals encoded as "start;end" entries joined by
// commas; the availability package owns parsing and serialization.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – artist or band name.
//  City               – home city of the artist.
//  State              – two-letter state code.
//  Phone              – contact phone number (NNN-NNN-NNNN).
//  Genres             – comma-joined genre list.
//  ImageLink          – URL of the artist image.
//  FacebookLink       – URL of the artist's Facebook page.
//  Website            – URL of the artist website.
//  SeekingVenue       – whether the artist is looking for venues.
//  SeekingDescription – free-form text shown when seeking a venue.
//  Availability       – delimited availability intervals.
type Artist struct {
	ID                 uint64 // artists.id
	Name               string // artists.name
	City               string // artists.city
	State              string // artists.state
	Phone              string // artists.phone
	Genres             string // artists.genres (comma-joined)
	ImageLink          string // artists.image_link
	FacebookLink       string // artists.facebook_link
	Website            string // artists.website
	SeekingVenue       bool   // artists.seeking_venue
	SeekingDescription string // artists.seeking_description
	Availability       string // artists.availability ("start;end" entries joined by commas)
}
