// This file defines handlers for venues: the grouped browse view, the
// detail view with its upcoming/past partition, and the create, edit
// and delete operations of the booking workflow.
package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-venue-booking/internal/model"
	"github.com/iliyamo/live-venue-booking/internal/recent"
	"github.com/iliyamo/live-venue-booking/internal/repository"
)

// VenueHandler bundles the dependencies of the venue endpoints.
type VenueHandler struct {
	VenueRepo *repository.VenueRepo // venue persistence and search
	ShowRepo  *repository.ShowRepo  // show partitions for the detail view
	Recent    *recent.Log           // recent-views buffer fed by detail views
}

// NewVenueHandler constructs a VenueHandler and panics if any dependency is nil.
func NewVenueHandler(venueRepo *repository.VenueRepo, showRepo *repository.ShowRepo, recentViews *recent.Log) *VenueHandler {
	if venueRepo == nil || showRepo == nil || recentViews == nil {
		panic("nil dependency passed to NewVenueHandler")
	}
	return &VenueHandler{VenueRepo: venueRepo, ShowRepo: showRepo, Recent: recentViews}
}

// venueForm is the bound request body for venue create and edit.  The
// field names match the submission boundary of the directory forms.
type venueForm struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

// validate checks the required fields and formats.  It returns a
// user-facing message for the first violation, or "" when the form is
// acceptable.
func (f *venueForm) validate() string {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	switch {
	case f.Name == "":
		return "name is required"
	case f.City == "":
		return "city is required"
	case f.State == "":
		return "state is required"
	case f.Address == "":
		return "address is required"
	case !phoneRe.MatchString(f.Phone):
		return "invalid phone number"
	case len(f.Genres) == 0:
		return "genres are required"
	case !validGenres(f.Genres):
		return "invalid genre value"
	}
	return ""
}

// apply copies the form onto a venue record, joining the genre list
// into its stored form.  Every mutable field is overwritten.
func (f *venueForm) apply(v *model.Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.Genres = joinGenres(f.Genres)
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.Website
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
}

// ListVenues handles GET /v1/venues.  Venues are grouped by their
// distinct (city, state) pairs; each venue carries the count of shows
// starting at or after a single instant captured for the request.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	now := time.Now().UTC()
	areas, err := h.VenueRepo.GroupByCityState(c.Request().Context(), now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// GetVenue handles GET /v1/venues/:id.  It returns the venue with its
// shows partitioned into upcoming and past relative to one captured
// instant, and records the view in the recent-views buffer.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	venue, err := h.VenueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now().UTC()
	upcoming, past, err := h.ShowRepo.ListByVenue(ctx, id, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	h.Recent.Add(recent.Entry{Kind: recent.KindVenue, ID: venue.ID, Name: venue.Name})

	return c.JSON(http.StatusOK, echo.Map{
		"id":                   venue.ID,
		"name":                 venue.Name,
		"genres":               splitGenres(venue.Genres),
		"address":              venue.Address,
		"city":                 venue.City,
		"state":                venue.State,
		"phone":                venue.Phone,
		"website":              venue.Website,
		"facebook_link":        venue.FacebookLink,
		"seeking_talent":       venue.SeekingTalent,
		"seeking_description":  venue.SeekingDescription,
		"image_link":           venue.ImageLink,
		"past_shows":           past,
		"upcoming_shows":       upcoming,
		"past_shows_count":     len(past),
		"upcoming_shows_count": len(upcoming),
	})
}

// EditVenueForm handles GET /v1/venues/:id/edit and returns the stored
// record with genres already split, ready to prefill the edit form.
func (h *VenueHandler) EditVenueForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	venue, err := h.VenueRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                  venue.ID,
		"name":                venue.Name,
		"city":                venue.City,
		"state":               venue.State,
		"address":             venue.Address,
		"phone":               venue.Phone,
		"genres":              splitGenres(venue.Genres),
		"image_link":          venue.ImageLink,
		"facebook_link":       venue.FacebookLink,
		"website":             venue.Website,
		"seeking_talent":      venue.SeekingTalent,
		"seeking_description": venue.SeekingDescription,
	})
}

// CreateVenue handles POST /v1/venues.  The form is validated before
// anything reaches the store; persistence failures surface as a
// generic message with nothing written.
func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var form venueForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := form.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	var venue model.Venue
	form.apply(&venue)
	if err := h.VenueRepo.Create(c.Request().Context(), &venue); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an error occurred, venue could not be created"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      venue.ID,
		"name":    venue.Name,
		"message": "venue " + venue.Name + " was successfully listed",
	})
}

// UpdateVenue handles PUT /v1/venues/:id with a full replace of every
// mutable field, genres included.
func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form venueForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := form.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	venue := model.Venue{ID: id}
	form.apply(&venue)
	if err := h.VenueRepo.Update(c.Request().Context(), &venue); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an error occurred, venue could not be updated"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":      venue.ID,
		"name":    venue.Name,
		"message": "venue " + venue.Name + " was successfully updated",
	})
}

// DeleteVenue handles DELETE /v1/venues/:id.  Dependent shows are
// removed in the same transaction as the venue itself.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.VenueRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an error occurred"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
