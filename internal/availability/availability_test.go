package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"2025-06-01T10:00:00;2025-06-01T18:00:00",
		"2025-06-01T10:00:00;2025-06-01T18:00:00,2025-06-02T09:00:00;2025-06-02T12:00:00",
		"2025-12-24T00:00:00;2025-12-31T23:59:59,2026-01-05T08:00:00;2026-01-05T20:00:00,2026-02-01T10:00:00;2026-02-01T11:00:00",
	}
	for _, stored := range cases {
		intervals, err := Parse(stored)
		require.NoError(t, err)
		assert.Equal(t, stored, Join(intervals), "parse then join must reproduce the stored string")
	}
}

func TestParseEmpty(t *testing.T) {
	intervals, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, intervals)
}

func TestParseSkipsEmptyEntries(t *testing.T) {
	intervals, err := Parse("2025-06-01T10:00:00;2025-06-01T18:00:00,,")
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, "2025-06-01T10:00:00", intervals[0].StartTime)
	assert.Equal(t, "2025-06-01T18:00:00", intervals[0].EndTime)
}

func TestParseMalformedDegradesWholly(t *testing.T) {
	// The second entry is missing its end field; the first entry must
	// not survive as a partial result.
	cases := []string{
		"2025-06-01T10:00:00;2025-06-01T18:00:00,2025-06-02T09:00:00",
		"justonetimestamp",
		"2025-06-01T10:00:00",
	}
	for _, stored := range cases {
		intervals, err := Parse(stored)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", stored)
		assert.Empty(t, intervals, "malformed input %q must yield no intervals", stored)
	}
}

func TestFromListsZipsByPosition(t *testing.T) {
	starts := []string{"2025-06-01T10:00:00", "2025-06-02T09:00:00"}
	ends := []string{"2025-06-01T18:00:00", "2025-06-02T12:00:00"}
	intervals := FromLists(starts, ends)
	require.Len(t, intervals, 2)
	assert.Equal(t, Interval{StartTime: "2025-06-01T10:00:00", EndTime: "2025-06-01T18:00:00"}, intervals[0])
	assert.Equal(t, Interval{StartTime: "2025-06-02T09:00:00", EndTime: "2025-06-02T12:00:00"}, intervals[1])
}

func TestFromListsUnevenLengths(t *testing.T) {
	// The extra tail of the longer slice is ignored, like zip().
	intervals := FromLists([]string{"a", "b", "c"}, []string{"x"})
	require.Len(t, intervals, 1)
	assert.Equal(t, Interval{StartTime: "a", EndTime: "x"}, intervals[0])
	assert.Empty(t, FromLists(nil, []string{"x"}))
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseTimestamp(s)
	require.NoError(t, err)
	return ts
}

func TestCovers(t *testing.T) {
	intervals := []Interval{
		{StartTime: "2025-06-01T10:00:00", EndTime: "2025-06-01T18:00:00"},
		{StartTime: "2025-06-05T09:00:00", EndTime: "2025-06-05T12:00:00"},
	}
	cases := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"inside first interval", "2025-06-01T12:00:00", true},
		{"inside second interval", "2025-06-05T10:30:00", true},
		{"equal to a start boundary", "2025-06-01T10:00:00", true},
		{"equal to an end boundary", "2025-06-01T18:00:00", true},
		{"before every interval", "2025-05-31T23:59:59", false},
		{"between intervals", "2025-06-03T12:00:00", false},
		{"after every interval", "2025-06-06T00:00:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Covers(mustTime(t, tc.candidate), intervals)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoversUnsortedOverlapping(t *testing.T) {
	// Intervals are neither sorted nor disjoint; any match wins.
	intervals := []Interval{
		{StartTime: "2025-06-10T00:00:00", EndTime: "2025-06-11T00:00:00"},
		{StartTime: "2025-06-01T00:00:00", EndTime: "2025-06-20T00:00:00"},
		{StartTime: "2025-06-09T00:00:00", EndTime: "2025-06-12T00:00:00"},
	}
	got, err := Covers(mustTime(t, "2025-06-02T08:00:00"), intervals)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestCoversEmpty(t *testing.T) {
	got, err := Covers(mustTime(t, "2025-06-01T10:00:00"), nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCoversBadBound(t *testing.T) {
	intervals := []Interval{{StartTime: "not-a-time", EndTime: "2025-06-01T18:00:00"}}
	_, err := Covers(mustTime(t, "2025-06-01T10:00:00"), intervals)
	assert.Error(t, err)
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, s := range []string{
		"2025-06-01T10:00:00Z",
		"2025-06-01T10:00:00",
		"2025-06-01 10:00:00",
	} {
		ts, err := ParseTimestamp(s)
		require.NoError(t, err, "input %q", s)
		assert.Equal(t, 2025, ts.Year())
		assert.Equal(t, 10, ts.Hour())
	}
	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}
