// This file defines the show listing and the booking workflow.  Show
// creation is the only write path for shows: the candidate start time
// must fall inside one of the artist's availability windows before
// anything is persisted, and shows are never edited or deleted
// individually afterwards.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-venue-booking/internal/availability"
	"github.com/iliyamo/live-venue-booking/internal/queue"
	"github.com/iliyamo/live-venue-booking/internal/repository"
	queue_publisher "github.com/iliyamo/live-venue-booking/internal/service"
)

// ShowHandler bundles the dependencies of the show endpoints.
type ShowHandler struct {
	ShowRepo   *repository.ShowRepo   // show persistence and listings
	ArtistRepo *repository.ArtistRepo // availability lookup for booking
}

// NewShowHandler constructs a ShowHandler and panics if any dependency is nil.
func NewShowHandler(showRepo *repository.ShowRepo, artistRepo *repository.ArtistRepo) *ShowHandler {
	if showRepo == nil || artistRepo == nil {
		panic("nil dependency passed to NewShowHandler")
	}
	return &ShowHandler{ShowRepo: showRepo, ArtistRepo: artistRepo}
}

// ListShows handles GET /v1/shows and returns every show annotated
// with its venue and artist display fields.
func (h *ShowHandler) ListShows(c echo.Context) error {
	shows, err := h.ShowRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": shows})
}

// CreateShow handles POST /v1/shows and runs the booking workflow:
// friendly artist existence check, availability parse (malformed
// degrades to no availability plus a warning), inclusive conflict
// check, then a transactional insert.  Nothing is persisted on any
// rejection path.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	var body struct {
		VenueID   uint64 `json:"venue_id"`   // venue hosting the show
		ArtistID  uint64 `json:"artist_id"`  // artist being booked
		StartTime string `json:"start_time"` // ISO start time
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.VenueID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id is required"})
	}
	if body.ArtistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist_id is required"})
	}
	startRaw := strings.TrimSpace(body.StartTime)
	if startRaw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time is required"})
	}
	startTime, err := availability.ParseTimestamp(startRaw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time format"})
	}

	ctx := c.Request().Context()
	// Friendly existence check on the artist only; the venue reference is
	// enforced by the store's foreign key.
	artist, err := h.ArtistRepo.GetByID(ctx, body.ArtistID)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify artist"})
	}

	intervals, parseErr := availability.Parse(artist.Availability)
	available, err := availability.Covers(startTime, intervals)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if !available {
		resp := echo.Map{"error": "the artist is not available at this time"}
		if parseErr != nil {
			resp["warning"] = "invalid availability: " + artist.Availability
		}
		return c.JSON(http.StatusConflict, resp)
	}

	if err := h.ShowRepo.Create(ctx, body.VenueID, body.ArtistID, startTime); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "an error occurred, show could not be listed"})
	}

	// Publish the booking event after the commit.  Delivery failures are
	// logged by the publisher and never affect the response.
	event := queue.ShowBookedEvent{
		VenueID:    body.VenueID,
		ArtistID:   artist.ID,
		ArtistName: artist.Name,
		StartTime:  startTime.UTC().Format(time.RFC3339),
		BookedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		if err := queue_publisher.PublishShowBooked(context.Background(), event); err != nil {
			log.Printf("show-booked publish failed: %v", err)
		}
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"venue_id":   body.VenueID,
		"artist_id":  artist.ID,
		"start_time": startTime.UTC().Format(time.RFC3339),
		"message":    "show was successfully listed",
	})
}
