// Package availability parses and checks artist availability windows.
// An artist's availability is stored as a single delimited string:
// entries are separated by commas and the start/end timestamps inside
// an entry by a semicolon, e.g. "2025-06-01T10:00:00;2025-06-01T18:00:00".
package availability

import (
	"errors"
	"strings"
	"time"
)

const (
	entrySep = "," // separates intervals from each other
	fieldSep = ";" // separates start from end inside one interval
)

// ErrMalformed indicates the stored availability string could not be
// parsed.  Callers receive an empty interval list alongside it, never a
// partial one, and should surface a warning rather than fail hard.
var ErrMalformed = errors.New("malformed availability")

// Interval is a single availability window.  The bounds stay as the
// raw timestamp strings so that serializing the parsed list reproduces
// the stored value byte for byte.
type Interval struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// timeLayouts lists the accepted timestamp forms, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 style timestamp in any of the
// accepted layouts.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Parse converts a stored availability string into its interval list.
// An empty input yields an empty list and no error.  Empty entries
// (from doubled or trailing commas) are skipped.  Any entry missing
// its end field degrades the WHOLE result to an empty list plus
// ErrMalformed; partial lists are never returned.
func Parse(s string) ([]Interval, error) {
	intervals := []Interval{}
	if s == "" {
		return intervals, nil
	}
	for _, entry := range strings.Split(s, entrySep) {
		if entry == "" {
			continue
		}
		fields := strings.Split(entry, fieldSep)
		if len(fields) < 2 {
			return []Interval{}, ErrMalformed
		}
		intervals = append(intervals, Interval{StartTime: fields[0], EndTime: fields[1]})
	}
	return intervals, nil
}

// Join serializes intervals back into the stored encoding.  For any
// list produced by Parse from a well-formed string, Join returns that
// original string.
func Join(intervals []Interval) string {
	entries := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		entries = append(entries, iv.StartTime+fieldSep+iv.EndTime)
	}
	return strings.Join(entries, entrySep)
}

// FromLists pairs two parallel slices of start and end timestamps by
// position, matching how the edit form submits availability.  When the
// slices differ in length the extra tail is ignored.
func FromLists(starts, ends []string) []Interval {
	n := len(starts)
	if len(ends) < n {
		n = len(ends)
	}
	intervals := make([]Interval, 0, n)
	for i := 0; i < n; i++ {
		intervals = append(intervals, Interval{StartTime: starts[i], EndTime: ends[i]})
	}
	return intervals
}

// Covers reports whether t falls inside at least one interval,
// inclusive of both endpoints.  Intervals may overlap and need not be
// sorted; the first match wins.  An unparseable bound met before any
// match is an error.
func Covers(t time.Time, intervals []Interval) (bool, error) {
	for _, iv := range intervals {
		start, err := ParseTimestamp(iv.StartTime)
		if err != nil {
			return false, err
		}
		end, err := ParseTimestamp(iv.EndTime)
		if err != nil {
			return false, err
		}
		if !t.Before(start) && !t.After(end) {
			return true, nil
		}
	}
	return false, nil
}
