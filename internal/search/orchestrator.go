package search

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hifisearch/internal/diag"
	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
)

// Orchestrator runs one query against every provider concurrently. A
// slow or failing provider never takes the others down with it.
type Orchestrator struct {
	providers []provider.Provider
	timeout   time.Duration
	rep       diag.Reporter
	log       *zap.Logger
}

func NewOrchestrator(providers []provider.Provider, timeout time.Duration, rep diag.Reporter, log *zap.Logger) *Orchestrator {
	return &Orchestrator{providers: providers, timeout: timeout, rep: rep, log: log}
}

type outcome struct {
	name     string
	listings []domain.Listing
}

type searchReply struct {
	listings []domain.Listing
	err      error
}

// Dispatch fans the query out, one goroutine per provider, each under
// its own timeout. Every provider gets a key in the result map; the ones
// that timed out or failed map to an empty slice.
//
// The timeout bounds the wait, not the provider: a Search that ignores
// its context is abandoned at the deadline and its eventual result
// discarded.
func (o *Orchestrator) Dispatch(ctx context.Context, q provider.Query) domain.ResultMap {
	var g errgroup.Group
	results := make(chan outcome, len(o.providers))

	for _, p := range o.providers {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, o.timeout)
			defer cancel()

			start := time.Now()
			o.log.Debug("provider search",
				zap.String("provider", p.Name()), zap.String("query", q.Term))

			// buffered so an abandoned Search can still complete
			reply := make(chan searchReply, 1)
			go func() {
				listings, err := p.Search(pctx, q)
				reply <- searchReply{listings: listings, err: err}
			}()

			var r searchReply
			select {
			case r = <-reply:
			case <-pctx.Done():
				r = searchReply{err: pctx.Err()}
			}

			switch {
			case r.err == nil:
				o.log.Debug("provider done",
					zap.String("provider", p.Name()),
					zap.Int("listings", len(r.listings)),
					zap.Duration("elapsed", time.Since(start)))
				results <- outcome{name: p.Name(), listings: r.listings}

			case ctx.Err() != nil:
				// the whole dispatch was interrupted; nothing to report

			case errors.Is(r.err, context.DeadlineExceeded):
				o.rep.Report(diag.Event{
					Provider: p.Name(), Kind: diag.KindTimeout,
					Message: "no response within " + o.timeout.String(),
				})

			default:
				o.rep.Report(diag.Event{
					Provider: p.Name(), Kind: diag.KindFault, Message: r.err.Error(),
				})
			}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	out := make(domain.ResultMap, len(o.providers))
	for _, p := range o.providers {
		out[p.Name()] = []domain.Listing{}
	}
	for res := range results {
		out[res.name] = res.listings
	}
	return out
}
