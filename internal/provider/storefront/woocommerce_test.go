package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hifisearch/internal/provider"
	"hifisearch/internal/provider/fetch"
)

func testDeps() Deps {
	client := fetch.NewClient(5*time.Second, 1, fetch.NewHostLimiter(1000, 1000), zap.NewNop())
	return Deps{Client: client}
}

func TestWooCommerceSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wc/store/products", r.URL.Path)
		assert.Equal(t, "förstärkare", r.URL.Query().Get("search"))

		if r.URL.Query().Get("page") != "1" {
			// paging past the end answers 400, like the real Store API
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `[
			{
				"id": 42,
				"name": "NAD C316BEE V2",
				"short_description": "<p>Demoexemplar i fint skick</p>",
				"permalink": "https://shop.example/produkt/nad-c316",
				"date_created": "2025-10-20T09:30:00",
				"prices": {"price": "349500", "currency_minor_unit": 2},
				"images": [{"src": "https://shop.example/img/nad.jpg"}]
			},
			{
				"id": 43,
				"name": "Dyr förstärkare",
				"permalink": "https://shop.example/produkt/dyr",
				"prices": {"price": "9900000", "currency_minor_unit": 2}
			}
		]`)
	}))
	defer srv.Close()

	p := NewWooCommerce("Testbutiken", srv.URL, testDeps())
	got, err := p.Search(context.Background(), provider.Query{Term: "förstärkare", MaxPrice: 5000})
	require.NoError(t, err)
	require.Len(t, got, 1, "the 99000 kr unit is outside the price window")

	l := got[0]
	assert.Equal(t, "NAD C316BEE V2", l.Title)
	assert.Equal(t, "Demoexemplar i fint skick", l.Description, "markup is stripped")
	assert.InDelta(t, 3495.0, l.Price, 0.001, "minor units scale to kronor")
	assert.True(t, l.HasPrice)
	assert.Equal(t, "https://shop.example/produkt/nad-c316", l.URL)
	assert.Equal(t, "Testbutiken", l.Source)
	assert.Equal(t, "42", l.Extra["product_id"])
}

func TestWooCommerceEmptyPageStopsPaging(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	p := NewWooCommerce("Testbutiken", srv.URL, testDeps())
	got, err := p.Search(context.Background(), provider.Query{Term: "dac"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, calls)
}

func TestMatchesQuery(t *testing.T) {
	assert.True(t, matchesQuery("nad", "NAD C316BEE", "integrated amplifier"))
	assert.True(t, matchesQuery("AMPLIFIER", "NAD C316BEE", "integrated amplifier"))
	assert.False(t, matchesQuery("luxman", "NAD C316BEE", "integrated amplifier"))
	assert.False(t, matchesQuery("   ", "anything"))
}
