package provider

import (
	"fmt"
	"strings"

	"hifisearch/internal/diag"
)

// matchName reports whether a user-supplied site name refers to a
// provider. Matching is case-insensitive and accepts any single word of
// the display name, so "facebook" selects "Facebook Marketplace".
func matchName(input, name string) bool {
	in := strings.ToLower(strings.TrimSpace(input))
	low := strings.ToLower(name)
	if in == low {
		return true
	}
	for _, word := range strings.Fields(low) {
		if in == word {
			return true
		}
	}
	return false
}

// Select narrows the full provider list to the user's include or exclude
// set. Both empty means everything. Unrecognized names are reported and
// ignored rather than failing the run.
func Select(all []Provider, include, exclude []string, rep diag.Reporter) []Provider {
	available := func() string {
		names := make([]string, 0, len(all))
		for _, p := range all {
			names = append(names, p.Name())
		}
		return strings.Join(names, ", ")
	}

	if len(include) > 0 {
		var out []Provider
		for _, site := range include {
			matched := false
			for _, p := range all {
				if matchName(site, p.Name()) && !contains(out, p) {
					out = append(out, p)
					matched = true
					break
				}
			}
			if !matched {
				rep.Report(diag.Event{
					Kind:    diag.KindConfig,
					Message: fmt.Sprintf("unrecognized site %q (available: %s)", site, available()),
				})
			}
		}
		return out
	}

	if len(exclude) > 0 {
		excluded := make(map[string]bool)
		for _, site := range exclude {
			matched := false
			for _, p := range all {
				if matchName(site, p.Name()) {
					excluded[p.Name()] = true
					matched = true
					break
				}
			}
			if !matched {
				rep.Report(diag.Event{
					Kind:    diag.KindConfig,
					Message: fmt.Sprintf("unrecognized site %q (available: %s)", site, available()),
				})
			}
		}
		var out []Provider
		for _, p := range all {
			if !excluded[p.Name()] {
				out = append(out, p)
			}
		}
		return out
	}

	return all
}

func contains(ps []Provider, p Provider) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
