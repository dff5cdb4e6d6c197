package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hifisearch/internal/diag"
	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
)

func newEngine(t *testing.T, providers ...provider.Provider) *Engine {
	t.Helper()
	orch := NewOrchestrator(providers, time.Second, diag.Nop(), zap.NewNop())
	return NewEngine(NewExpander(nil), orch, zap.NewNop())
}

func TestRunDeduplicatesAcrossVariants(t *testing.T) {
	// "amp" expands to three variants; the provider returns the same
	// listing for each, so it must appear exactly once.
	p := &fakeProvider{name: "Blocket", listings: []domain.Listing{
		listing("NAD C316", "https://blocket.se/annons/1"),
	}}
	e := newEngine(t, p)

	got, err := e.Run(context.Background(), "amp", 0, 0)
	require.NoError(t, err)
	assert.Len(t, got["Blocket"], 1)
	assert.Equal(t, 1, got.Total())
}

func TestRunDeduplicatesAcrossProvidersBySignature(t *testing.T) {
	shared := listing("NAD C316", "https://blocket.se/annons/1")
	a := &fakeProvider{name: "Blocket", listings: []domain.Listing{shared}}
	b := &fakeProvider{name: "HiFiShark", listings: []domain.Listing{shared}}
	e := newEngine(t, a, b)

	got, err := e.Run(context.Background(), "nad c316", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total(), "same URL from two providers is one listing")
}

func TestRunKeepsDistinctListingsWithoutURLs(t *testing.T) {
	a := domain.Listing{Title: "Rega Planar 3", Location: "Stockholm", Source: "X"}
	b := domain.Listing{Title: "Rega Planar 3", Location: "Göteborg", Source: "X"}
	p := &fakeProvider{name: "X", listings: []domain.Listing{a, b}}
	e := newEngine(t, p)

	got, err := e.Run(context.Background(), "rega", 0, 0)
	require.NoError(t, err)
	assert.Len(t, got["X"], 2, "different locations mean different signatures")
}

func TestRunEveryProviderHasAKey(t *testing.T) {
	e := newEngine(t,
		&fakeProvider{name: "empty"},
		&fakeProvider{name: "full", listings: []domain.Listing{listing("x", "https://f/1")}},
	)

	got, err := e.Run(context.Background(), "rega", 0, 0)
	require.NoError(t, err)
	require.Contains(t, got, "empty")
	assert.Empty(t, got["empty"])
}

func TestRunStopsBetweenVariantsOnCancel(t *testing.T) {
	p := &fakeProvider{name: "X", listings: []domain.Listing{listing("x", "https://x/1")}}
	e := newEngine(t, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, "amp", 0, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunInterruptedMidDispatchReturnsError(t *testing.T) {
	// an interrupt during a dispatch must surface as an error so the
	// caller knows the merge is incomplete and drops it; "luxman" has
	// no synonyms, so the only dispatch is also the last one
	p := &fakeProvider{name: "X", delay: time.Second}
	e := newEngine(t, p)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := e.Run(ctx, "luxman", 0, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
