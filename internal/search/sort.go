package search

import (
	"sort"
	"strings"
	"time"

	"hifisearch/internal/dates"
	"hifisearch/internal/domain"
)

// Sort modes accepted by SortListings.
const (
	SortDate  = "date"
	SortSite  = "site"
	SortPrice = "price"
)

// Flatten collects every provider's listings into one slice, in the
// given provider order. Unknown order entries are skipped; providers
// missing from the order are appended alphabetically at the end.
func Flatten(m domain.ResultMap, order []string) []domain.Listing {
	var out []domain.Listing
	taken := make(map[string]bool, len(order))
	for _, name := range order {
		out = append(out, m[name]...)
		taken[name] = true
	}

	var rest []string
	for name := range m {
		if !taken[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, m[name]...)
	}
	return out
}

// dateTieKey breaks equal-date ties. Aggregator rows use the origin
// marketplace name, so a HiFiShark re-listing of a Blocket ad ties the
// same way the direct Blocket row does.
func dateTieKey(l domain.Listing) string {
	if origin := l.OriginSite(); origin != "" {
		return strings.ToLower(origin)
	}
	return strings.ToLower(l.Source)
}

// SortListings orders listings in place, stably, by the given mode.
// date: newest first, unparseable dates last. site: provider display
// name ascending, insertion order within a site. price: cheapest first,
// unpriced rows last. An unknown mode leaves the slice untouched.
func SortListings(listings []domain.Listing, mode string, now time.Time) {
	postedAt := func(l domain.Listing) (time.Time, bool) {
		return dates.Parse(l.PostedDate, now)
	}

	newerFirst := func(a, b domain.Listing) (bool, bool) {
		ta, oka := postedAt(a)
		tb, okb := postedAt(b)
		switch {
		case oka && okb:
			if ta.Equal(tb) {
				return false, false
			}
			return ta.After(tb), true
		case oka:
			return true, true
		case okb:
			return false, true
		default:
			return false, false
		}
	}

	switch mode {
	case SortDate:
		sort.SliceStable(listings, func(i, j int) bool {
			if less, decided := newerFirst(listings[i], listings[j]); decided {
				return less
			}
			return dateTieKey(listings[i]) < dateTieKey(listings[j])
		})

	case SortSite:
		sort.SliceStable(listings, func(i, j int) bool {
			return strings.ToLower(listings[i].Source) < strings.ToLower(listings[j].Source)
		})

	case SortPrice:
		sort.SliceStable(listings, func(i, j int) bool {
			a, b := listings[i], listings[j]
			switch {
			case a.HasPrice && b.HasPrice:
				return a.Price < b.Price
			case a.HasPrice:
				return true
			default:
				return false
			}
		})
	}
}
