package storefront

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/fetch"
)

// Abicart (Textalk webshop) renders a single category grid with tws-*
// classes; there is one page and no search endpoint.
type Abicart struct {
	name        string
	baseURL     string
	categoryURL string
	deps        Deps
}

func NewAbicart(name, baseURL, categoryURL string, deps Deps) *Abicart {
	return &Abicart{name: name, baseURL: baseURL, categoryURL: categoryURL, deps: deps}
}

func (a *Abicart) Name() string { return a.name }

func (a *Abicart) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	doc, err := a.deps.Client.GetDocument(ctx, a.categoryURL)
	if err != nil {
		return nil, fmt.Errorf("abicart category: %w", err)
	}

	var out []domain.Listing
	doc.Find(".tws-list--grid-item").Each(func(_ int, item *goquery.Selection) {
		titleLink := item.Find(".tws-util-heading--heading a").First()
		if titleLink.Length() == 0 {
			return
		}
		title := fetch.CleanText(titleLink.Text())
		if !matchesQuery(q.Term, title) {
			return
		}

		href, _ := titleLink.Attr("href")
		priceNode := item.Find(".tws-api--price-current").First()
		if priceNode.Length() == 0 {
			priceNode = item.Find(".tws-api--price-regular").First()
		}
		price, hasPrice := fetch.ExtractPrice(fetch.CleanText(priceNode.Text()))

		imageURL, _ := item.Find(".tws-img").First().Attr("source")

		l := domain.Listing{
			Title:       title,
			Description: fetch.CleanText(item.Find(".tws-article-labels--label-text").First().Text()),
			Price:       price,
			HasPrice:    hasPrice,
			URL:         fetch.AbsoluteURL(a.baseURL, href),
			ImageURL:    imageURL,
			Source:      a.name,
			Extra:       map[string]any{"source": "abicart"},
		}
		if !q.InBounds(l) {
			return
		}
		out = append(out, l)
	})
	return out, nil
}
