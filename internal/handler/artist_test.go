package handler

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/live-venue-booking/internal/recent"
	"github.com/iliyamo/live-venue-booking/internal/repository"
)

func newArtistHandler(db *sql.DB) (*ArtistHandler, *recent.Log) {
	log := recent.NewLog(recent.DefaultCapacity)
	h := NewArtistHandler(repository.NewArtistRepo(db), repository.NewShowRepo(db), log)
	return h, log
}

func emptyArtistShows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"venue_id", "name", "image_link", "start_time"})
}

func TestGetArtistDetail(t *testing.T) {
	db, mock := newMockDB(t)
	h, views := newArtistHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM artists WHERE id = ?`)).
		WithArgs(uint64(4)).
		WillReturnRows(artistRow(4, "Guns N Petals", "2025-06-01T10:00:00;2025-06-01T18:00:00"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.artist_id = ?`)).
		WithArgs(uint64(4)).
		WillReturnRows(emptyArtistShows().
			AddRow(1, "The Musical Hop", "", time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)))

	c, rec := jsonRequest(http.MethodGet, "/v1/artists/4", "")
	withPathID(c, "4")
	require.NoError(t, h.GetArtist(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Guns N Petals", body["name"])
	assert.Equal(t, float64(1), body["past_shows_count"])
	assert.Equal(t, float64(0), body["upcoming_shows_count"])
	assert.NotContains(t, body, "warning")

	intervals := body["availability"].([]any)
	require.Len(t, intervals, 1)
	first := intervals[0].(map[string]any)
	assert.Equal(t, "2025-06-01T10:00:00", first["start_time"])
	assert.Equal(t, "2025-06-01T18:00:00", first["end_time"])

	snap := views.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, recent.Entry{Kind: recent.KindArtist, ID: 4, Name: "Guns N Petals"}, snap[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetArtistMalformedAvailability(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newArtistHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM artists WHERE id = ?`)).
		WithArgs(uint64(4)).
		WillReturnRows(artistRow(4, "Guns N Petals", "garbage"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.artist_id = ?`)).
		WithArgs(uint64(4)).
		WillReturnRows(emptyArtistShows())

	c, rec := jsonRequest(http.MethodGet, "/v1/artists/4", "")
	withPathID(c, "4")
	require.NoError(t, h.GetArtist(c))
	assert.Equal(t, http.StatusOK, rec.Code, "malformed availability is never a hard failure")

	body := decodeBody(t, rec)
	assert.Equal(t, "invalid availability: garbage", body["warning"])
	assert.Empty(t, body["availability"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetArtistNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h, views := newArtistHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM artists WHERE id = ?`)).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonRequest(http.MethodGet, "/v1/artists/99", "")
	withPathID(c, "99")
	require.NoError(t, h.GetArtist(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, views.Snapshot())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateArtistJoinsAvailability(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newArtistHandler(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO artists`)).
		WithArgs("Guns N Petals", "San Francisco", "CA", "326-123-5000", "Rock n Roll",
			"", "", "", true, "",
			"2025-06-01T10:00:00;2025-06-01T18:00:00,2025-06-02T09:00:00;2025-06-02T12:00:00").
		WillReturnResult(sqlmock.NewResult(4, 1))

	c, rec := jsonRequest(http.MethodPost, "/v1/artists", `{
		"name": "Guns N Petals", "city": "San Francisco", "state": "CA",
		"phone": "326-123-5000", "genres": ["Rock n Roll"], "seeking_venue": true,
		"availability_start_times": ["2025-06-01T10:00:00", "2025-06-02T09:00:00"],
		"availability_end_times": ["2025-06-01T18:00:00", "2025-06-02T12:00:00"]
	}`)
	require.NoError(t, h.CreateArtist(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(4), body["id"])
	assert.Equal(t, "artist Guns N Petals was successfully listed", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateArtistValidation(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newArtistHandler(db)

	c, rec := jsonRequest(http.MethodPost, "/v1/artists",
		`{"name":"A","city":"SF","state":"CA","phone":"nope","genres":["Rock"]}`)
	require.NoError(t, h.CreateArtist(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid phone number", decodeBody(t, rec)["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateArtistRebuildsAvailability(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newArtistHandler(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE artists`)).
		WithArgs("Guns N Petals", "San Francisco", "CA", "326-123-5000", "Rock n Roll",
			"", "", "", false, "", "2025-07-01T10:00:00;2025-07-01T18:00:00", uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := jsonRequest(http.MethodPut, "/v1/artists/4", `{
		"name": "Guns N Petals", "city": "San Francisco", "state": "CA",
		"phone": "326-123-5000", "genres": ["Rock n Roll"],
		"availability_start_times": ["2025-07-01T10:00:00"],
		"availability_end_times": ["2025-07-01T18:00:00"]
	}`)
	withPathID(c, "4")
	require.NoError(t, h.UpdateArtist(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "artist Guns N Petals was successfully updated", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListArtists(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newArtistHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM artists ORDER BY name ASC, id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(4, "Guns N Petals").
			AddRow(5, "Matt Quevedo"))

	c, rec := jsonRequest(http.MethodGet, "/v1/artists", "")
	require.NoError(t, h.ListArtists(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteArtistNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newArtistHandler(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM shows WHERE artist_id = ?`)).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM artists WHERE id = ?`)).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	c, rec := jsonRequest(http.MethodDelete, "/v1/artists/99", "")
	withPathID(c, "99")
	require.NoError(t, h.DeleteArtist(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
