package handler

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/live-venue-booking/internal/recent"
	"github.com/iliyamo/live-venue-booking/internal/repository"
)

func newVenueHandler(db *sql.DB) (*VenueHandler, *recent.Log) {
	log := recent.NewLog(recent.DefaultCapacity)
	h := NewVenueHandler(repository.NewVenueRepo(db), repository.NewShowRepo(db), log)
	return h, log
}

// withPathID rebinds the :id path parameter on a freshly built context.
func withPathID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func venueRow(id uint64, name, city, state, genres string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "city", "state", "address", "phone", "genres", "image_link",
		"facebook_link", "website", "seeking_talent", "seeking_description",
	}).AddRow(id, name, city, state, "1015 Folsom Street", "123-123-1234", genres, "", "", "", true, "")
}

func TestListVenuesGroupsByArea(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newVenueHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`LEFT JOIN shows s ON s.venue_id = v.id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state", "num_upcoming"}).
			AddRow(3, "Dueling Pianos Bar", "New York", "NY", 0).
			AddRow(1, "The Musical Hop", "San Francisco", "CA", 1))

	c, rec := jsonRequest(http.MethodGet, "/v1/venues", "")
	require.NoError(t, h.ListVenues(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	areas := decodeBody(t, rec)["areas"].([]any)
	require.Len(t, areas, 2)
	first := areas[0].(map[string]any)
	assert.Equal(t, "New York", first["city"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVenueDetail(t *testing.T) {
	db, mock := newMockDB(t)
	h, views := newVenueHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM venues WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnRows(venueRow(1, "The Musical Hop", "San Francisco", "CA", "Jazz,Reggae,Swing"))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.venue_id = ?`)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"artist_id", "name", "image_link", "start_time"}).
			AddRow(4, "Guns N Petals", "", time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)).
			AddRow(5, "Matt Quevedo", "", time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)))

	c, rec := jsonRequest(http.MethodGet, "/v1/venues/1", "")
	withPathID(c, "1")
	require.NoError(t, h.GetVenue(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "The Musical Hop", body["name"])
	assert.Equal(t, []any{"Jazz", "Reggae", "Swing"}, body["genres"])
	assert.Equal(t, float64(1), body["past_shows_count"])
	assert.Equal(t, float64(1), body["upcoming_shows_count"])

	// The detail view is logged as a recent view.
	snap := views.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, recent.Entry{Kind: recent.KindVenue, ID: 1, Name: "The Musical Hop"}, snap[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVenueNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h, views := newVenueHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM venues WHERE id = ?`)).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonRequest(http.MethodGet, "/v1/venues/99", "")
	withPathID(c, "99")
	require.NoError(t, h.GetVenue(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, views.Snapshot(), "a failed lookup is not a view")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVenueBadID(t *testing.T) {
	db, _ := newMockDB(t)
	h, _ := newVenueHandler(db)

	c, rec := jsonRequest(http.MethodGet, "/v1/venues/abc", "")
	withPathID(c, "abc")
	require.NoError(t, h.GetVenue(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateVenueValidation(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newVenueHandler(db)

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"missing name", `{"city":"SF","state":"CA","address":"a","phone":"123-123-1234","genres":["Jazz"]}`, "name is required"},
		{"bad phone", `{"name":"V","city":"SF","state":"CA","address":"a","phone":"5551234","genres":["Jazz"]}`, "invalid phone number"},
		{"no genres", `{"name":"V","city":"SF","state":"CA","address":"a","phone":"123-123-1234","genres":[]}`, "genres are required"},
		{"genre with delimiter", `{"name":"V","city":"SF","state":"CA","address":"a","phone":"123-123-1234","genres":["Jazz,Funk"]}`, "invalid genre value"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonRequest(http.MethodPost, "/v1/venues", tc.body)
			require.NoError(t, h.CreateVenue(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.msg, decodeBody(t, rec)["error"])
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "invalid forms must not reach the store")
}

func TestCreateVenueSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newVenueHandler(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO venues`)).
		WithArgs("The Musical Hop", "San Francisco", "CA", "1015 Folsom Street", "123-123-1234",
			"Jazz,Reggae,Swing", "", "", "", false, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := jsonRequest(http.MethodPost, "/v1/venues",
		`{"name":"The Musical Hop","city":"San Francisco","state":"CA","address":"1015 Folsom Street","phone":"123-123-1234","genres":["Jazz","Reggae","Swing"]}`)
	require.NoError(t, h.CreateVenue(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "venue The Musical Hop was successfully listed", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVenueNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newVenueHandler(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE venues`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM venues WHERE id = ? LIMIT 1`)).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonRequest(http.MethodPut, "/v1/venues/99",
		`{"name":"V","city":"SF","state":"CA","address":"a","phone":"123-123-1234","genres":["Jazz"]}`)
	withPathID(c, "99")
	require.NoError(t, h.UpdateVenue(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVenue(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newVenueHandler(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM shows WHERE venue_id = ?`)).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM venues WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := jsonRequest(http.MethodDelete, "/v1/venues/1", "")
	withPathID(c, "1")
	require.NoError(t, h.DeleteVenue(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditVenueFormPrefill(t *testing.T) {
	db, mock := newMockDB(t)
	h, _ := newVenueHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM venues WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnRows(venueRow(1, "The Musical Hop", "San Francisco", "CA", "Jazz,Reggae,Swing"))

	c, rec := jsonRequest(http.MethodGet, "/v1/venues/1/edit", "")
	withPathID(c, "1")
	require.NoError(t, h.EditVenueForm(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{"Jazz", "Reggae", "Swing"}, body["genres"])
	assert.NotContains(t, body, "past_shows")
	assert.NoError(t, mock.ExpectationsWereMet())
}
