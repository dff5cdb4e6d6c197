// Package search turns one user term into marketplace queries, fans
// them out across providers, and shapes the merged results.
package search

import "strings"

// builtinSynonyms maps a lowercased search term to the variants worth
// querying alongside it. Swedish marketplaces list the same gear under
// both languages, so the table goes both ways.
var builtinSynonyms = map[string][]string{
	"amp":         {"amplifier", "förstärkare"},
	"amplifier":   {"amp", "förstärkare"},
	"förstärkare": {"amp", "amplifier"},
	"turntable":   {"record player", "skivspelare"},
	"record":      {"record player", "vinyl"},
	"hifi":        {"audio", "audio equipment"},
}

// Expander resolves a term to its query variants, original term first.
type Expander struct {
	table map[string][]string
}

// NewExpander merges user-configured synonyms over the built-in table.
// A configured key replaces the built-in entry for that key outright.
func NewExpander(extra map[string][]string) *Expander {
	table := make(map[string][]string, len(builtinSynonyms)+len(extra))
	for k, v := range builtinSynonyms {
		table[strings.ToLower(k)] = v
	}
	for k, v := range extra {
		table[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Expander{table: table}
}

// Expand returns the term followed by its synonyms, deduplicated
// case-insensitively. A term with no entry expands to just itself.
func (e *Expander) Expand(term string) []string {
	variants := []string{term}
	seen := map[string]bool{strings.ToLower(term): true}

	for _, syn := range e.table[strings.ToLower(strings.TrimSpace(term))] {
		key := strings.ToLower(syn)
		if seen[key] {
			continue
		}
		seen[key] = true
		variants = append(variants, syn)
	}
	return variants
}
