package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/live-venue-booking/internal/recent"
)

// HomeHandler serves the landing view: the recently viewed venues and
// artists.  It only reads the buffer; detail handlers write to it.
type HomeHandler struct {
	Recent *recent.Log
}

// NewHomeHandler constructs a HomeHandler and panics if the buffer is nil.
func NewHomeHandler(recentViews *recent.Log) *HomeHandler {
	if recentViews == nil {
		panic("nil recent log passed to NewHomeHandler")
	}
	return &HomeHandler{Recent: recentViews}
}

// Home handles GET /v1/recent and returns the buffer oldest first.
func (h *HomeHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"recent": h.Recent.Snapshot()})
}
