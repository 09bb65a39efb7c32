package model

// Venue represents a physical location that can host shows.  A venue
// owns zero or more shows via shows.venue_id.  Genres are stored as a
// comma-joined string; splitting and joining happens at the handler
// boundary so the stored value round-trips without loss.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – venue name.
//  City               – city the venue is located in.
//  State              – two-letter state code.
//  Address            – street address.
//  Phone              – contact phone number (NNN-NNN-NNNN).
//  Genres             – comma-joined genre list.
//  ImageLink          – URL of the venue image.
//  FacebookLink       – URL of the venue's Facebook page.
//  Website            – URL of the venue website.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free-form text shown when seeking talent.
type Venue struct {
	ID                 uint64 // venues.id
	Name               string // venues.name
	City               string // venues.city
	State              string // venues.state
	Address            string // venues.address
	Phone              string // venues.phone
	Genres             string // venues.genres (comma-joined)
	ImageLink          string // venues.image_link
	FacebookLink       string // venues.facebook_link
	Website            string // venues.website
	SeekingTalent      bool   // venues.seeking_talent
	SeekingDescription string // venues.seeking_description
}
