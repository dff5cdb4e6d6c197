// Package provider defines the capability contract every marketplace
// source satisfies, plus selection of enabled sources for a run.
package provider

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"hifisearch/internal/diag"
	"hifisearch/internal/domain"
)

// Query carries one search variant and optional price bounds. A zero
// bound means unset.
type Query struct {
	Term     string
	MinPrice float64
	MaxPrice float64
}

// InBounds applies the price window. Listings without a price always
// pass; bounds only ever narrow priced results.
func (q Query) InBounds(l domain.Listing) bool {
	if !l.HasPrice {
		return true
	}
	if q.MinPrice > 0 && l.Price < q.MinPrice {
		return false
	}
	if q.MaxPrice > 0 && l.Price > q.MaxPrice {
		return false
	}
	return true
}

// Provider is one marketplace source. Search returns an empty slice and
// nil error when nothing matched; errors are reserved for actual faults.
type Provider interface {
	Name() string
	Search(ctx context.Context, q Query) ([]domain.Listing, error)
}

// Releaser is implemented by providers holding long-lived resources
// (a headless browser). Release must be idempotent and tolerate being
// called after the resource is already gone.
type Releaser interface {
	Release(ctx context.Context) error
}

// ReleaseAll shuts down every releasable provider concurrently, each
// under its own timeout. Benign shutdown races are swallowed; anything
// else goes to the reporter.
func ReleaseAll(ctx context.Context, providers []Provider, timeout time.Duration, rep diag.Reporter) {
	var g errgroup.Group
	for _, p := range providers {
		rel, ok := p.(Releaser)
		if !ok {
			continue
		}
		name := p.Name()
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if err := rel.Release(rctx); err != nil && !diag.BenignRelease(err) {
				rep.Report(diag.Event{Provider: name, Kind: diag.KindRelease, Message: err.Error()})
			}
			return nil
		})
	}
	_ = g.Wait()
}
