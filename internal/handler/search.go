package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-venue-booking/internal/repository"
)

// SearchHandler bundles the repositories behind the search endpoints.
type SearchHandler struct {
	VenueRepo  *repository.VenueRepo
	ArtistRepo *repository.ArtistRepo
}

// NewSearchHandler constructs a SearchHandler and panics if any dependency is nil.
func NewSearchHandler(venueRepo *repository.VenueRepo, artistRepo *repository.ArtistRepo) *SearchHandler {
	if venueRepo == nil || artistRepo == nil {
		panic("nil dependency passed to NewSearchHandler")
	}
	return &SearchHandler{VenueRepo: venueRepo, ArtistRepo: artistRepo}
}

// SearchVenues handles GET /v1/search/venues?term=...  Matching is a
// case-insensitive substring search on the venue name; "Hop" finds
// "The Musical Hop".  The count is computed independently of the
// returned list.
func (h *SearchHandler) SearchVenues(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("term"))
	now := time.Now().UTC()
	items, total, err := h.VenueRepo.SearchByName(c.Request().Context(), term, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": total, "data": items})
}

// SearchArtists handles GET /v1/search/artists?term=... with the same
// matching rules as the venue search.
func (h *SearchHandler) SearchArtists(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("term"))
	now := time.Now().UTC()
	items, total, err := h.ArtistRepo.SearchByName(c.Request().Context(), term, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": total, "data": items})
}

// splitCityState splits a "City, State" term into its two trimmed
// parts.  Terms that do not split into exactly two parts yield no
// match at all rather than an error.
func splitCityState(term string) (city, state string, ok bool) {
	parts := strings.Split(term, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// SearchByLocation handles GET /v1/search/locations?term=City,%20State.
// It returns a combined list of venue and artist hits, each tagged by
// its key set (venue_id/venue_name vs artist_id/artist_name).  A term
// without exactly one comma returns zero results.
func (h *SearchHandler) SearchByLocation(c echo.Context) error {
	term := c.QueryParam("term")
	city, state, ok := splitCityState(term)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"count": 0, "data": []any{}})
	}
	ctx := c.Request().Context()
	venues, err := h.VenueRepo.FilterByCityState(ctx, city, state)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	artists, err := h.ArtistRepo.FilterByCityState(ctx, city, state)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	data := make([]any, 0, len(venues)+len(artists))
	for _, v := range venues {
		data = append(data, v)
	}
	for _, a := range artists {
		data = append(data, a)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(data), "data": data})
}
