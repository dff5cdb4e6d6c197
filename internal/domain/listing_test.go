package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignaturePrefersURL(t *testing.T) {
	l := Listing{Title: "NAD C316", URL: "https://blocket.se/annons/1", Location: "Stockholm"}
	assert.Equal(t, "https://blocket.se/annons/1", l.Signature())
}

func TestSignatureFallsBackToFields(t *testing.T) {
	priced := Listing{Title: "NAD C316", Price: 1500, HasPrice: true, Location: "Stockholm"}
	unpriced := Listing{Title: "NAD C316", Location: "Stockholm"}

	assert.Equal(t, "NAD C316|1500|Stockholm", priced.Signature())
	assert.Equal(t, "NAD C316|<nil>|Stockholm", unpriced.Signature())
	assert.NotEqual(t, priced.Signature(), unpriced.Signature(),
		"a priced and an unpriced copy are different listings")
}

func TestSourceLabelQualifiesAggregators(t *testing.T) {
	direct := Listing{Source: "Blocket"}
	assert.Equal(t, "Blocket", direct.SourceLabel())

	via := Listing{Source: "HiFiShark", Extra: map[string]any{"source_site": "blocket.se"}}
	assert.Equal(t, "HiFiShark (blocket.se)", via.SourceLabel())
	assert.Equal(t, "blocket.se", via.OriginSite())
}

func TestResultMapTotal(t *testing.T) {
	m := ResultMap{
		"A": {{Title: "x"}, {Title: "y"}},
		"B": {},
	}
	assert.Equal(t, 2, m.Total())
}
