package handler // handler defines http handlers

import (
	"regexp"  // regexp validates phone numbers at the form boundary
	"strconv" // strconv converts path params to numeric types
	"strings" // strings provides trimming and joining helpers

	"github.com/labstack/echo/v4" // echo defines request context types
)

// genreSep joins genre lists into their stored form.  No genre value
// may contain this character; the form validators reject it so the
// stored string always splits back into the original list.
const genreSep = ","

// phoneRe matches the only accepted phone format, e.g. "123-456-7890".
var phoneRe = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// pathID parses the :id path parameter into a uint64.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// joinGenres serializes a genre list into the stored comma-joined form.
func joinGenres(genres []string) string {
	return strings.Join(genres, genreSep)
}

// splitGenres is the inverse of joinGenres.  An empty stored value
// yields an empty list, not a single empty genre.
func splitGenres(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, genreSep)
}

// validGenres reports whether every genre is non-empty and free of the
// join delimiter, so the stored string round-trips without loss.
func validGenres(genres []string) bool {
	for _, g := range genres {
		if g == "" || strings.Contains(g, genreSep) {
			return false
		}
	}
	return true
}
