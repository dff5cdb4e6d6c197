package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.October, 30, 15, 4, 5, 0, time.UTC)

func TestParseKeywords(t *testing.T) {
	got, ok := Parse("Idag 14:32", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("Igår 09:10", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 29, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("Just nu", now)
	require.True(t, ok)
	assert.Equal(t, now, got)

	got, ok = Parse("posted today", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC), got)
}

func TestParseRelative(t *testing.T) {
	got, ok := Parse("2 days ago", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 28, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("3 hours ago", now)
	require.True(t, ok)
	assert.Equal(t, now.Add(-3*time.Hour), got)

	got, ok = Parse("1 week ago", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 23, 0, 0, 0, 0, time.UTC), got)
}

func TestParseAbsolute(t *testing.T) {
	got, ok := Parse("2024-10-15", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("22/10/2025", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 22, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("Oct 26, 2025", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("26 okt 2025", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC), got)
}

func TestParseYearlessRollsBack(t *testing.T) {
	// September is behind an October now, so the current year holds.
	got, ok := Parse("22 sep.", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC), got)

	// December would be in the future; the listing is from last year.
	got, ok = Parse("22 dec", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.December, 22, 0, 0, 0, 0, time.UTC), got)
}

func TestParseBareClockMeansToday(t *testing.T) {
	got, ok := Parse("14:32", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC), got)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not a date", "kontakta säljaren", "2025-13-40"} {
		_, ok := Parse(s, now)
		assert.False(t, ok, "input %q", s)
	}
}

func TestNormalizeISO(t *testing.T) {
	assert.Equal(t, "2025-10-30", NormalizeISO("Idag 14:32", now))
	assert.Equal(t, "2025-10-26", NormalizeISO("26 okt", now))
	assert.Equal(t, "", NormalizeISO("unknown", now))
}
