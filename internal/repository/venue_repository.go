// Package repository contains data access logic for the directory.
// This file defines repository methods for venues: plain CRUD plus the
// grouped browse view and the search queries the public API exposes.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons
	"strings"      // strings builds case-insensitive search terms
	"time"         // time carries the request-captured "now"

	"github.com/iliyamo/live-venue-booking/internal/model"
)

// venueColumns is the full column list scanned into model.Venue.
const venueColumns = `id, name, city, state, address, phone, genres, image_link, facebook_link, website, seeking_talent, seeking_description`

// VenueRepo manages persistence for venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *VenueRepo) DB() *sql.DB {
	return r.db
}

// scanVenue reads one row into a Venue using the venueColumns order.
func scanVenue(row *sql.Row) (*model.Venue, error) {
	var v model.Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.Genres,
		&v.ImageLink, &v.FacebookLink, &v.Website, &v.SeekingTalent, &v.SeekingDescription,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new venue and assigns the generated ID back to the
// struct.  All mutable fields must already be populated; genres arrive
// pre-joined from the handler.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, genres, image_link, facebook_link, website, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID retrieves a venue by its ID.  It returns ErrVenueNotFound if
// there is no matching row.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// Update replaces every mutable field of the venue identified by v.ID.
// Submitting unchanged values is not an error; only a missing row
// yields ErrVenueNotFound.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?, image_link = ?, facebook_link = ?, website = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Genres,
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription,
		v.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows affected is either "not found" or "nothing changed".
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ? LIMIT 1`, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return nil
}

// Delete removes a venue and all of its shows within one transaction.
// Shows are removed first so no partial cleanup can survive a failure.
// ErrVenueNotFound is returned when the venue does not exist; a failed
// commit reaches the caller through the named return.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Roll back on any error, otherwise commit and report its outcome.
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrVenueNotFound
		return err
	}
	return nil
}

// VenueSummary is one venue inside a city/state group or a name
// search result.  NumUpcomingShows counts shows starting at or after
// the instant captured when the request began.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int64  `json:"num_upcoming_shows"`
}

// CityStateGroup is one distinct (city, state) pair with every venue
// located there.
type CityStateGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// GroupByCityState returns every distinct (city, state) pair present
// in the venues table, each with its venues and their upcoming-show
// counts relative to now.  Ordering is by city, state, then venue ID
// so the browse view is deterministic.
func (r *VenueRepo) GroupByCityState(ctx context.Context, now time.Time) ([]CityStateGroup, error) {
	const q = `SELECT v.id, v.name, v.city, v.state,
	                  COALESCE(SUM(CASE WHEN s.start_time >= ? THEN 1 ELSE 0 END), 0) AS num_upcoming
	           FROM venues v
	           LEFT JOIN shows s ON s.venue_id = v.id
	           GROUP BY v.id, v.name, v.city, v.state
	           ORDER BY v.city ASC, v.state ASC, v.id ASC`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	groups := []CityStateGroup{}
	for rows.Next() {
		var (
			sum         VenueSummary
			city, state string
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &city, &state, &sum.NumUpcomingShows); err != nil {
			return nil, err
		}
		// Rows arrive sorted by (city, state); start a new group whenever
		// the pair changes.
		n := len(groups)
		if n == 0 || groups[n-1].City != city || groups[n-1].State != state {
			groups = append(groups, CityStateGroup{City: city, State: state})
			n++
		}
		groups[n-1].Venues = append(groups[n-1].Venues, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

// SearchByName performs a case-insensitive, unanchored substring match
// on venue names.  It returns the matching venues with their upcoming
// counts plus the total number of matches, counted by an independent
// query the way the search endpoint reports it.
func (r *VenueRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]VenueSummary, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var total int64
	const countSQL = `SELECT COUNT(*) FROM venues WHERE LOWER(name) LIKE ?`
	if err := r.db.QueryRowContext(ctx, countSQL, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	const dataSQL = `SELECT v.id, v.name,
	                        (SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time >= ?) AS num_upcoming
	                 FROM venues v
	                 WHERE LOWER(v.name) LIKE ?
	                 ORDER BY v.id ASC`
	rows, err := r.db.QueryContext(ctx, dataSQL, now, pattern)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []VenueSummary{}
	for rows.Next() {
		var sum VenueSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.NumUpcomingShows); err != nil {
			return nil, 0, err
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// VenueLocationHit tags a combined city/state search entry as a venue.
// The key set (venue_id/venue_name) is how callers discriminate venue
// hits from artist hits in the mixed result list.
type VenueLocationHit struct {
	VenueID   uint64 `json:"venue_id"`
	VenueName string `json:"venue_name"`
}

// FilterByCityState returns the venues whose city and state both match
// exactly, ignoring case.
func (r *VenueRepo) FilterByCityState(ctx context.Context, city, state string) ([]VenueLocationHit, error) {
	const q = `SELECT id, name FROM venues
	           WHERE LOWER(city) = LOWER(?) AND LOWER(state) = LOWER(?)
	           ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, city, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []VenueLocationHit{}
	for rows.Next() {
		var hit VenueLocationHit
		if err := rows.Scan(&hit.VenueID, &hit.VenueName); err != nil {
			return nil, err
		}
		out = append(out, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
