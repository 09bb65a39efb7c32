// This file defines repository methods for artists.  The shape mirrors
// the venue repository; artists additionally carry the delimited
// availability string consumed by the booking workflow.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/live-venue-booking/internal/model"
)

// artistColumns is the full column list scanned into model.Artist.
const artistColumns = `id, name, city, state, phone, genres, image_link, facebook_link, website, seeking_venue, seeking_description, availability`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that begin their own
// transactions.
func (r *ArtistRepo) DB() *sql.DB {
	return r.db
}

func scanArtist(row *sql.Row) (*model.Artist, error) {
	var a model.Artist
	err := row.Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Genres,
		&a.ImageLink, &a.FacebookLink, &a.Website, &a.SeekingVenue, &a.SeekingDescription, &a.Availability,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new artist and assigns the generated ID back to the
// struct.  Genres and availability arrive pre-joined from the handler.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link, website, seeking_venue, seeking_description, availability)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Genres,
		a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription, a.Availability,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID retrieves an artist by ID.  It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	const q = `SELECT ` + artistColumns + ` FROM artists WHERE id = ?`
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update replaces every mutable field of the artist identified by
// a.ID, including the rebuilt availability string.  Only a missing row
// yields ErrArtistNotFound; an unchanged submission is accepted.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?, facebook_link = ?, website = ?, seeking_venue = ?, seeking_description = ?, availability = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		a.Name, a.City, a.State, a.Phone, a.Genres,
		a.ImageLink, a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription, a.Availability,
		a.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ? LIMIT 1`, a.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		return err
	}
	return nil
}

// Delete removes an artist and all of their shows within one
// transaction.  ErrArtistNotFound is returned when the artist does not
// exist; a failed commit reaches the caller through the named return.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrArtistNotFound
		return err
	}
	return nil
}

// ArtistRef is the minimal listing row for the artist browse view.
type ArtistRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ListAll returns every artist ordered by name, for the browse page.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]ArtistRef, error) {
	const q = `SELECT id, name FROM artists ORDER BY name ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ArtistRef{}
	for rows.Next() {
		var ref ArtistRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ArtistSummary is one artist in a name search result.
type ArtistSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int64  `json:"num_upcoming_shows"`
}

// SearchByName performs a case-insensitive, unanchored substring match
// on artist names, with upcoming-show counts relative to now and an
// independently counted total.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]ArtistSummary, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var total int64
	const countSQL = `SELECT COUNT(*) FROM artists WHERE LOWER(name) LIKE ?`
	if err := r.db.QueryRowContext(ctx, countSQL, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	const dataSQL = `SELECT a.id, a.name,
	                        (SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time >= ?) AS num_upcoming
	                 FROM artists a
	                 WHERE LOWER(a.name) LIKE ?
	                 ORDER BY a.id ASC`
	rows, err := r.db.QueryContext(ctx, dataSQL, now, pattern)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []ArtistSummary{}
	for rows.Next() {
		var sum ArtistSummary
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

// ArtistLocationHit tags a combined city/state search entry as an
// artist, discriminated from venue hits by its key set.
type ArtistLocationHit struct {
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name"`
}

// FilterByCityState returns the artists whose city and state both
// match exactly, ignoring case.
func (r *ArtistRepo) FilterByCityState(ctx context.Context, city, state string) ([]ArtistLocationHit, error) {
	const q = `SELECT id, name FROM artists
	           WHERE LOWER(city) = LOWER(?) AND LOWER(state) = LOWER(?)
	           ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, city, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ArtistLocationHit{}
	for rows.Next() {
		var hit ArtistLocationHit
		if err := rows.Scan(&hit.ArtistID, &hit.ArtistName); err != nil {
			return nil, err
		}
		out = append(out, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
