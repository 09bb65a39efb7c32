// This file defines repository methods for shows.  A show links one
// venue, one artist and a start time; the three columns form the
// composite primary key, so duplicate bookings for the same pair and
// instant are rejected by the key, not by application code.
package repository

import (
	"context"
	"database/sql"
	"time"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new show inside its own transaction.  Referential
// integrity against venues and artists is enforced by the foreign
// keys; any failure (including a duplicate composite key) rolls the
// transaction back and is reported to the caller with nothing
// persisted.
func (r *ShowRepo) Create(ctx context.Context, venueID, artistID uint64, startTime time.Time) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	_, err = tx.ExecContext(ctx, q, venueID, artistID, startTime.UTC())
	return err
}

// ShowRow is one entry of the full show listing, annotated with the
// names a client renders alongside the raw IDs.
type ShowRow struct {
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ListAll returns every show joined with its venue and artist.  The
// ordering follows the composite primary key so repeated listings are
// deterministic.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowRow, error) {
	const q = `SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           JOIN artists a ON a.id = s.artist_id
	           ORDER BY s.venue_id ASC, s.artist_id ASC, s.start_time ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ShowRow{}
	for rows.Next() {
		var row ShowRow
		if err := rows.Scan(&row.VenueID, &row.VenueName, &row.ArtistID, &row.ArtistName, &row.ArtistImageLink, &row.StartTime); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ArtistAppearance annotates one of a venue's shows with the performing
// artist's display fields.
type ArtistAppearance struct {
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ListByVenue loads every show of a venue joined with the performing
// artist and partitions them into upcoming (start_time >= now) and
// past.  A single query keeps the partition consistent with one
// captured instant; both slices come back ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64, now time.Time) (upcoming, past []ArtistAppearance, err error) {
	const q = `SELECT s.artist_id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN artists a ON a.id = s.artist_id
	           WHERE s.venue_id = ?
	           ORDER BY s.start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	upcoming, past = []ArtistAppearance{}, []ArtistAppearance{}
	for rows.Next() {
		var app ArtistAppearance
		if err := rows.Scan(&app.ArtistID, &app.ArtistName, &app.ArtistImageLink, &app.StartTime); err != nil {
			return nil, nil, err
		}
		if !app.StartTime.Before(now) {
			upcoming = append(upcoming, app)
		} else {
			past = append(past, app)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return upcoming, past, nil
}

// VenueAppearance annotates one of an artist's shows with the hosting
// venue's display fields.
type VenueAppearance struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ListByArtist is the symmetric partition for an artist's shows,
// annotated with the hosting venue.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64, now time.Time) (upcoming, past []VenueAppearance, err error) {
	const q = `SELECT s.venue_id, v.name, v.image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           WHERE s.artist_id = ?
	           ORDER BY s.start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	upcoming, past = []VenueAppearance{}, []VenueAppearance{}
	for rows.Next() {
		var app VenueAppearance
		if err := rows.Scan(&app.VenueID, &app.VenueName, &app.VenueImageLink, &app.StartTime); err != nil {
			return nil, nil, err
		}
		if !app.StartTime.Before(now) {
			upcoming = append(upcoming, app)
		} else {
			past = append(past, app)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return upcoming, past, nil
}
