package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/live-venue-booking/internal/handler" // import the handlers that implement the directory logic
)

// RegisterRoutes registers routes that do not belong to the directory
// itself.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterDirectory registers the venue, artist, show and home routes.
// The cache middleware wraps only the read-only listing endpoints;
// detail views stay uncached because every view must reach the
// recent-views buffer.
func RegisterDirectory(e *echo.Echo, v *handler.VenueHandler, a *handler.ArtistHandler, s *handler.ShowHandler, home *handler.HomeHandler, cache echo.MiddlewareFunc) {
	// Landing view: recently viewed venues and artists.
	e.GET("/v1/recent", home.Home)

	// Venues: grouped browse, detail with show partitions, edit-form
	// prefill and the create/update/delete workflow.
	e.GET("/v1/venues", v.ListVenues, cache)
	e.GET("/v1/venues/:id", v.GetVenue)
	e.GET("/v1/venues/:id/edit", v.EditVenueForm)
	e.POST("/v1/venues", v.CreateVenue)
	e.PUT("/v1/venues/:id", v.UpdateVenue)
	e.DELETE("/v1/venues/:id", v.DeleteVenue)

	// Artists mirror the venue surface.
	e.GET("/v1/artists", a.ListArtists, cache)
	e.GET("/v1/artists/:id", a.GetArtist)
	e.GET("/v1/artists/:id/edit", a.EditArtistForm)
	e.POST("/v1/artists", a.CreateArtist)
	e.PUT("/v1/artists/:id", a.UpdateArtist)
	e.DELETE("/v1/artists/:id", a.DeleteArtist)

	// Shows: the full listing and the booking workflow.  Shows have no
	// update or delete routes.
	e.GET("/v1/shows", s.ListShows, cache)
	e.POST("/v1/shows", s.CreateShow)
}

// RegisterSearch registers the search endpoints: substring name search
// for venues and artists plus the combined "City, State" search.
func RegisterSearch(e *echo.Echo, s *handler.SearchHandler) {
	e.GET("/v1/search/venues", s.SearchVenues)
	e.GET("/v1/search/artists", s.SearchArtists)
	e.GET("/v1/search/locations", s.SearchByLocation)
}
