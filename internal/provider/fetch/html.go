package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML flattens an HTML fragment (storefront descriptions come as
// markup) into collapsed plain text.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	return CleanText(doc.Text())
}

// CleanText collapses whitespace and non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
