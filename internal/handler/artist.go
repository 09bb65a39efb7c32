// This file defines handlers for artists.  Artists mirror the venue
// endpoints and additionally carry availability windows: the edit form
// submits two parallel lists of start and end timestamps that are
// zipped back into the stored delimited string.
package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-venue-booking/internal/availability"
	"github.com/iliyamo/live-venue-booking/internal/model"
	"github.com/iliyamo/live-venue-booking/internal/recent"
	"github.com/iliyamo/live-venue-booking/internal/repository"
)

// ArtistHandler bundles the dependencies of the artist endpoints.
type ArtistHandler struct {
	ArtistRepo *repository.ArtistRepo // artist persistence and search
	ShowRepo   *repository.ShowRepo   // show partitions for the detail view
	Recent     *recent.Log            // recent-views buffer fed by detail views
}

// NewArtistHandler constructs an ArtistHandler and panics if any dependency is nil.
func NewArtistHandler(artistRepo *repository.ArtistRepo, showRepo *repository.ShowRepo, recentViews *recent.Log) *ArtistHandler {
	if artistRepo == nil || showRepo == nil || recentViews == nil {
		panic("nil dependency passed to NewArtistHandler")
	}
	return &ArtistHandler{ArtistRepo: artistRepo, ShowRepo: showRepo, Recent: recentViews}
}

// artistForm is the bound request body for artist create and edit.
// Availability arrives as two parallel same-length lists whose pairing
// by position reconstructs the intervals.
type artistForm struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
	AvailabilityStarts []string `json:"availability_start_times"`
	AvailabilityEnds   []string `json:"availability_end_times"`
}

// validate checks the required fields and formats, returning a
// user-facing message for the first violation or "" when acceptable.
func (f *artistForm) validate() string {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Phone = strings.TrimSpace(f.Phone)
	switch {
	case f.Name == "":
		return "name is required"
	case f.City == "":
		return "city is required"
	case f.State == "":
		return "state is required"
	case !phoneRe.MatchString(f.Phone):
		return "invalid phone number"
	case len(f.Genres) == 0:
		return "genres are required"
	case !validGenres(f.Genres):
		return "invalid genre value"
	}
	return ""
}

// apply copies the form onto an artist record, joining genres and
// rebuilding the availability string from the parallel lists.
func (f *artistForm) apply(a *model.Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.Genres = joinGenres(f.Genres)
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.Website
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
	a.Availability = availability.Join(availability.FromLists(f.AvailabilityStarts, f.AvailabilityEnds))
}

// ListArtists handles GET /v1/artists and returns every artist ordered
// by name.
func (h *ArtistHandler) ListArtists(c echo.Context) error {
	artists, err := h.ArtistRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": artists})
}

// GetArtist handles GET /v1/artists/:id.  The artist's shows are
// partitioned into upcoming and past relative to one captured instant
// and annotated with the hosting venue.  A malformed stored
// availability degrades to an empty list plus a warning field; it is
// never a hard failure.
func (h *ArtistHandler) GetArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	artist, err := h.ArtistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now().UTC()
	upcoming, past, err := h.ShowRepo.ListByArtist(ctx, id, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	intervals, parseErr := availability.Parse(artist.Availability)

	h.Recent.Add(recent.Entry{Kind: recent.KindArtist, ID: artist.ID, Name: artist.Name})

	resp := echo.Map{
		"id":                   artist.ID,
		"name":                 artist.Name,
		"genres":               splitGenres(artist.Genres),
		"city":                 artist.City,
		"state":                artist.State,
		"phone":                artist.Phone,
		"website":              artist.Website,
		"facebook_link":        artist.FacebookLink,
		"seeking_venue":        artist.SeekingVenue,
		"seeking_description":  artist.SeekingDescription,
		"image_link":           artist.ImageLink,
		"upcoming_shows":       upcoming,
		"upcoming_shows_count": len(upcoming),
		"past_shows":           past,
		"past_shows_count":     len(past),
		"availability":         intervals,
	}
	if parseErr != nil {
		resp["warning"] = "invalid availability: " + artist.Availability
	}
	return c.JSON(http.StatusOK, resp)
}

// EditArtistForm handles GET /v1/artists/:id/edit and returns the
// stored record with genres and availability already split, ready to
// prefill the edit form.
func (h *ArtistHandler) EditArtistForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	artist, err := h.ArtistRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	intervals, parseErr := availability.Parse(artist.Availability)
	resp := echo.Map{
		"id":                  artist.ID,
		"name":                artist.Name,
		"city":                artist.City,
		"state":               artist.State,
		"phone":               artist.Phone,
		"genres":              splitGenres(artist.Genres),
		"image_link":          artist.ImageLink,
		"facebook_link":       artist.FacebookLink,
		"website":             artist.Website,
		"seeking_venue":       artist.SeekingVenue,
		"seeking_description": artist.SeekingDescription,
		"availability":        intervals,
	}
	if parseErr != nil {
		resp["warning"] = "invalid availability: " + artist.Availability
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateArtist handles POST /v1/artists.
func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	var form artistForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := form.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	var artist model.Artist
	form.apply(&artist)
	if err := h.ArtistRepo.Create(c.Request().Context(), &artist); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an error occurred, artist could not be listed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      artist.ID,
		"name":    artist.Name,
		"message": "artist " + artist.Name + " was successfully listed",
	})
}

// UpdateArtist handles PUT /v1/artists/:id with a full replace of
// every mutable field, genres and availability included.
func (h *ArtistHandler) UpdateArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form artistForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := form.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	artist := model.Artist{ID: id}
	form.apply(&artist)
	if err := h.ArtistRepo.Update(c.Request().Context(), &artist); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an error occurred, artist could not be updated"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":      artist.ID,
		"name":    artist.Name,
		"message": "artist " + artist.Name + " was successfully updated",
	})
}

// DeleteArtist handles DELETE /v1/artists/:id.  Dependent shows are
// removed in the same transaction as the artist.
func (h *ArtistHandler) DeleteArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ArtistRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an error occurred"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
