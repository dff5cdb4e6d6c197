package search

import (
	"context"

	"go.uber.org/zap"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
)

// Engine ties expansion, dispatch and dedup together for one search
// session. Dedup state spans query variants but not sessions, so two
// separate Run calls can both return the same listing.
type Engine struct {
	expander *Expander
	orch     *Orchestrator
	log      *zap.Logger
}

func NewEngine(expander *Expander, orch *Orchestrator, log *zap.Logger) *Engine {
	return &Engine{expander: expander, orch: orch, log: log}
}

// Run searches every provider with every variant of the term and merges
// the results per provider, keeping the first-seen copy of each
// duplicate. Variants run in expansion order, so listings found under
// the original term win over synonym rediscoveries.
func (e *Engine) Run(ctx context.Context, term string, minPrice, maxPrice float64) (domain.ResultMap, error) {
	variants := e.expander.Expand(term)
	e.log.Info("searching", zap.String("term", term), zap.Strings("variants", variants))

	merged := make(domain.ResultMap, len(e.orch.providers))
	for _, p := range e.orch.providers {
		merged[p.Name()] = []domain.Listing{}
	}
	seen := make(map[string]bool)

	for _, variant := range variants {
		if err := ctx.Err(); err != nil {
			return merged, err
		}

		rm := e.orch.Dispatch(ctx, provider.Query{Term: variant, MinPrice: minPrice, MaxPrice: maxPrice})
		for name, listings := range rm {
			for _, l := range listings {
				sig := l.Signature()
				if seen[sig] {
					continue
				}
				seen[sig] = true
				merged[name] = append(merged[name], l)
			}
		}
	}

	// a cancel during the final dispatch must still surface; the merge
	// is incomplete either way
	if err := ctx.Err(); err != nil {
		return merged, err
	}

	e.log.Info("search done", zap.String("term", term), zap.Int("listings", merged.Total()))
	return merged, nil
}
