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

// PrestaShop search pages render a classic ajax_block_product list.
type PrestaShop struct {
	name    string
	baseURL string
	deps    Deps
}

func NewPrestaShop(name, baseURL string, deps Deps) *PrestaShop {
	return &PrestaShop{name: name, baseURL: baseURL, deps: deps}
}

func (p *PrestaShop) Name() string { return p.name }

func (p *PrestaShop) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	var out []domain.Listing

	for page := 1; page <= 5; page++ {
		pageURL := fmt.Sprintf("%s/search?controller=search&search_query=%s&page=%d",
			p.baseURL, url.QueryEscape(q.Term), page)
		doc, err := p.deps.Client.GetDocument(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("prestashop page %d: %w", page, err)
		}

		items := doc.Find("ul.product_list li.ajax_block_product")
		if items.Length() == 0 {
			break
		}

		items.Each(func(_ int, item *goquery.Selection) {
			l, ok := p.parseItem(item)
			if !ok || !q.InBounds(l) {
				return
			}
			out = append(out, l)
		})
	}
	return out, nil
}

func (p *PrestaShop) parseItem(item *goquery.Selection) (domain.Listing, bool) {
	titleLink := item.Find(".product-name").First()
	if titleLink.Length() == 0 {
		return domain.Listing{}, false
	}

	href, _ := titleLink.Attr("href")
	priceText := fetch.CleanText(item.Find(".product-price").First().Text())
	price, hasPrice := fetch.ExtractPrice(priceText)

	stock := item.Find(".availability").First()
	if stock.Length() == 0 {
		stock = item.Find(".product-reference").First()
	}

	imageURL, _ := item.Find(".product-image-container img").First().Attr("data-original")

	return domain.Listing{
		Title:       fetch.CleanText(titleLink.Text()),
		Description: fetch.CleanText(item.Find(".product-desc").First().Text()),
		Price:       price,
		HasPrice:    hasPrice,
		URL:         fetch.AbsoluteURL(p.baseURL, href),
		ImageURL:    imageURL,
		Location:    fetch.CleanText(stock.Text()),
		Source:      p.name,
		Extra:       map[string]any{"source": "prestashop"},
	}, true
}
