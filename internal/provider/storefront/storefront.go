// Package storefront implements the retailer half of the provider set:
// fixed dealer sites (used/demo gear corners) reached over plain HTTP.
// One type per shop platform; the individual shops are catalog entries.
package storefront

import (
	"strings"

	"hifisearch/internal/provider/fetch"
)

// Deps are the shared collaborators every storefront provider needs.
type Deps struct {
	Client *fetch.Client
}

// matchesQuery does the same case-insensitive substring match the shops'
// own search boxes skip: most of these sites list a whole category and
// leave narrowing to us.
func matchesQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.ToLower(f))
		b.WriteByte(' ')
	}
	return strings.Contains(b.String(), q)
}
