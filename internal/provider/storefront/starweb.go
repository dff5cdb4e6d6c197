package storefront

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/fetch"
)

// Starweb storefronts expose a conventional /search page with a product
// gallery grid.
type Starweb struct {
	name    string
	baseURL string
	deps    Deps
}

func NewStarweb(name, baseURL string, deps Deps) *Starweb {
	return &Starweb{name: name, baseURL: baseURL, deps: deps}
}

func (s *Starweb) Name() string { return s.name }

func (s *Starweb) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	var out []domain.Listing
	seen := make(map[string]bool)

	for page := 1; page <= 5; page++ {
		pageURL := fmt.Sprintf("%s/search?q=%s&page=%d", s.baseURL, url.QueryEscape(q.Term), page)
		doc, err := s.deps.Client.GetDocument(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("starweb search page %d: %w", page, err)
		}

		items := doc.Find("ul.products li.gallery-item")
		if items.Length() == 0 {
			break
		}

		items.Each(func(_ int, item *goquery.Selection) {
			l, ok := s.parseItem(item)
			if !ok {
				return
			}
			if !matchesQuery(q.Term, l.Title) || !q.InBounds(l) || seen[l.URL] {
				return
			}
			seen[l.URL] = true
			out = append(out, l)
		})
	}
	return out, nil
}

func (s *Starweb) parseItem(item *goquery.Selection) (domain.Listing, bool) {
	link := item.Find("a.gallery-info-link").First()
	if link.Length() == 0 {
		return domain.Listing{}, false
	}

	title := fetch.CleanText(item.Find(".description h3").First().Text())
	if title == "" {
		title, _ = link.Attr("title")
	}
	if title == "" {
		title = "Okänd produkt"
	}

	href, _ := link.Attr("href")
	priceText := fetch.CleanText(item.Find(".product-price .amount").First().Text())
	price, hasPrice := fetch.ExtractPrice(priceText)

	img := item.Find("img").First()
	imageURL, ok := img.Attr("data-src")
	if !ok {
		imageURL, _ = img.Attr("src")
	}

	return domain.Listing{
		Title:       title,
		Description: fetch.CleanText(item.Find(".product-sku").First().Text()),
		Price:       price,
		HasPrice:    hasPrice,
		URL:         fetch.AbsoluteURL(s.baseURL, href),
		ImageURL:    imageURL,
		Location:    fetch.CleanText(item.Find(".stock-status").First().Text()),
		Source:      s.name,
		Extra:       map[string]any{"source": "starweb"},
	}, true
}
