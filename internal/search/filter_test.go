package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hifisearch/internal/domain"
)

func TestFilterByDaysDisabled(t *testing.T) {
	m := domain.ResultMap{"X": {listing("a", "https://x/1")}}
	assert.Equal(t, m, FilterByDays(m, 0, time.Now()))
	assert.Equal(t, m, FilterByDays(m, -3, time.Now()))
}

func TestFilterByDaysCutoffIsExactlyNowMinusN(t *testing.T) {
	now := time.Date(2025, time.October, 30, 15, 0, 0, 0, time.UTC)
	m := domain.ResultMap{"X": {
		// hour offsets keep the time of day, so these land precisely
		// on and just past the now-7d instant
		{Title: "boundary", PostedDate: "168 hours ago"},
		{Title: "inside", PostedDate: "2025-10-29"},
		{Title: "just-outside", PostedDate: "169 hours ago"},
		{Title: "outside", PostedDate: "2025-10-22"},
	}}

	got := FilterByDays(m, 7, now)
	var titles []string
	for _, l := range got["X"] {
		titles = append(titles, l.Title)
	}
	assert.Equal(t, []string{"boundary", "inside"}, titles)
}

func TestFilterByDaysDropsSameDayListingsOlderThanCutoffInstant(t *testing.T) {
	// a midnight-parsed date on the cutoff day sits before now-7d when
	// now has a time of day, so it goes
	now := time.Date(2025, time.October, 30, 15, 0, 0, 0, time.UTC)
	m := domain.ResultMap{"X": {
		{Title: "cutoff-day-midnight", PostedDate: "2025-10-23"},
	}}
	got := FilterByDays(m, 7, now)
	assert.Empty(t, got["X"])
}

func TestFilterByDaysKeepsUnparseableDates(t *testing.T) {
	now := time.Date(2025, time.October, 30, 15, 0, 0, 0, time.UTC)
	m := domain.ResultMap{"X": {
		{Title: "undated", PostedDate: "kontakta säljaren"},
		{Title: "blank"},
		{Title: "old", PostedDate: "2020-01-01"},
	}}

	got := FilterByDays(m, 7, now)
	var titles []string
	for _, l := range got["X"] {
		titles = append(titles, l.Title)
	}
	assert.Equal(t, []string{"undated", "blank"}, titles)
}

func TestFilterByDaysKeepsEmptyProviderKeys(t *testing.T) {
	m := domain.ResultMap{"X": {}, "Y": {{Title: "old", PostedDate: "2020-01-01"}}}
	got := FilterByDays(m, 7, time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, got, "X")
	assert.Contains(t, got, "Y")
	assert.Empty(t, got["Y"])
}
