package search

import (
	"time"

	"hifisearch/internal/dates"
	"hifisearch/internal/domain"
)

// FilterByDays keeps listings posted within the last N days, cutoff
// inclusive. Listings whose posted date cannot be parsed are kept; a
// stale result is better than a silently dropped fresh one. N <= 0
// disables the filter.
func FilterByDays(m domain.ResultMap, days int, now time.Time) domain.ResultMap {
	if days <= 0 {
		return m
	}
	cutoff := now.AddDate(0, 0, -days)

	out := make(domain.ResultMap, len(m))
	for name, listings := range m {
		kept := []domain.Listing{}
		for _, l := range listings {
			posted, ok := dates.Parse(l.PostedDate, now)
			if ok && posted.Before(cutoff) {
				continue
			}
			kept = append(kept, l)
		}
		out[name] = kept
	}
	return out
}
