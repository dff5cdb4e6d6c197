package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims the synonym table and checks the numeric
// knobs, returning a normalized copy.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if len(out.Synonyms) > 0 {
		normalized := make(map[string][]string, len(out.Synonyms))
		for term, syns := range out.Synonyms {
			key := strings.ToLower(strings.TrimSpace(term))
			if key == "" {
				continue
			}
			seen := map[string]bool{}
			var ys []string
			for _, s := range syns {
				s = strings.TrimSpace(s)
				if s == "" || seen[strings.ToLower(s)] {
					continue
				}
				seen[strings.ToLower(s)] = true
				ys = append(ys, s)
			}
			normalized[key] = ys
		}
		out.Synonyms = normalized
	}

	if out.Search.ProviderTimeoutSeconds <= 0 {
		res.addErr("search.provider_timeout_seconds must be positive (got %d)", out.Search.ProviderTimeoutSeconds)
	}
	if out.Search.ReleaseTimeoutSeconds <= 0 {
		res.addErr("search.release_timeout_seconds must be positive (got %d)", out.Search.ReleaseTimeoutSeconds)
	}
	if out.Fetch.RequestTimeoutSeconds <= 0 {
		res.addErr("fetch.request_timeout_seconds must be positive (got %d)", out.Fetch.RequestTimeoutSeconds)
	}
	if out.Fetch.Retries <= 0 {
		out.Fetch.Retries = 1
	}
	if out.Fetch.HostRatePerSecond <= 0 {
		res.addErr("fetch.host_rate_per_second must be positive (got %g)", out.Fetch.HostRatePerSecond)
	}
	if out.Fetch.HostBurst <= 0 {
		out.Fetch.HostBurst = 1
	}
	if out.Search.ProviderTimeoutSeconds < out.Fetch.RequestTimeoutSeconds {
		res.addWarn("provider timeout (%ds) is shorter than a single fetch timeout (%ds)",
			out.Search.ProviderTimeoutSeconds, out.Fetch.RequestTimeoutSeconds)
	}

	return out, res
}
