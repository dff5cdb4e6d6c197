package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12 500 kr", 12500, true},
		{"1.299,50", 1299.50, true},
		{"1,299.50", 1299.50, true},
		{"299,00 kr", 299, true},
		{"1,299", 1299, true},
		{"4 995:-", 4995, true},
		{"Pris: 850 SEK", 850, true},
		{"gratis", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ExtractPrice(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 0.001, "input %q", c.in)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://rehifi.se/p/1", AbsoluteURL("https://rehifi.se", "/p/1"))
	assert.Equal(t, "https://rehifi.se/p/1", AbsoluteURL("https://rehifi.se/", "p/1"))
	assert.Equal(t, "https://other.se/x", AbsoluteURL("https://rehifi.se", "https://other.se/x"))
	assert.Equal(t, "", AbsoluteURL("https://rehifi.se", "  "))
}
