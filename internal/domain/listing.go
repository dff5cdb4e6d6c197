package domain

import (
	"fmt"
	"strings"
)

// Listing is one normalized marketplace result. Providers construct it;
// nothing downstream mutates it.
type Listing struct {
	Title       string
	Description string
	Price       float64 // 0 when HasPrice is false
	HasPrice    bool
	URL         string
	ImageURL    string
	PostedDate  string // raw provider text, e.g. "Idag 14:32" or "Oct 26, 2025"
	Location    string
	Source      string         // provider display name that surfaced the listing
	Extra       map[string]any // opaque per-provider metadata
}

// Signature is the dedup identity: the URL, or when a provider has no
// canonical link, title|price|location.
func (l Listing) Signature() string {
	if l.URL != "" {
		return l.URL
	}
	price := "<nil>"
	if l.HasPrice {
		price = fmt.Sprintf("%g", l.Price)
	}
	return l.Title + "|" + price + "|" + l.Location
}

// OriginSite reports the marketplace a listing originally came from when
// the surfacing provider is itself an aggregator (HiFiShark re-lists
// Blocket, Tradera etc). Empty when the provider is the origin.
func (l Listing) OriginSite() string {
	if l.Extra == nil {
		return ""
	}
	s, _ := l.Extra["source_site"].(string)
	return strings.TrimSpace(s)
}

// SourceLabel is the display name for the Source column, qualified with
// the origin site for aggregator rows: "HiFiShark (blocket.se)".
func (l Listing) SourceLabel() string {
	if origin := l.OriginSite(); origin != "" {
		return fmt.Sprintf("%s (%s)", l.Source, origin)
	}
	return l.Source
}

// ResultMap holds one dispatch's output: provider display name to its
// ordered listings. Providers that timed out or failed map to an empty
// slice, never a missing key.
type ResultMap map[string][]Listing

// Total counts listings across all providers.
func (m ResultMap) Total() int {
	n := 0
	for _, ls := range m {
		n += len(ls)
	}
	return n
}
