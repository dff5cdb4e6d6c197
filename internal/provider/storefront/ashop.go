package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/fetch"
)

// Ashop lists a whole category through a `:product-data` JSON attribute
// on the grid element; there is no server-side search, so we page through
// the category and match titles locally.
type Ashop struct {
	name        string
	baseURL     string
	categoryURL string
	deps        Deps
}

func NewAshop(name, baseURL, categoryURL string, deps Deps) *Ashop {
	return &Ashop{
		name:        name,
		baseURL:     baseURL,
		categoryURL: strings.TrimSuffix(categoryURL, "/"),
		deps:        deps,
	}
}

func (a *Ashop) Name() string { return a.name }

type ashopPayload struct {
	Products []ashopProduct `json:"products"`
	Total    json.Number    `json:"total_amount_of_products"`
	PerPage  json.Number    `json:"per_page"`
}

type ashopProduct struct {
	ID           json.Number `json:"product_id"`
	Name         string      `json:"product_name"`
	Title        string      `json:"product_title"`
	InfoPuff     string      `json:"product_info_puff"`
	StatusName   string      `json:"product_status_name"`
	DisplayPrice string      `json:"product_display_price"`
	PuffImage    string      `json:"product_puff_image"`
	URL          string      `json:"product_url"`
	Link         string      `json:"product_link"`
	Tags         []ashopTag  `json:"tags"`
}

type ashopTag struct {
	Name string `json:"product_tag_name"`
}

func (a *Ashop) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	var out []domain.Listing
	seen := make(map[string]bool)
	maxPage := 0

	for page := 1; ; page++ {
		products, total, perPage, err := a.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}
		if total > 0 && perPage > 0 {
			maxPage = (total + perPage - 1) / perPage
		}

		for _, p := range products {
			if !matchesQuery(q.Term, p.Name, p.Title, p.InfoPuff) {
				continue
			}
			l := a.toListing(p)
			if !q.InBounds(l) || seen[l.URL] {
				continue
			}
			seen[l.URL] = true
			out = append(out, l)
		}

		if maxPage > 0 && page >= maxPage {
			break
		}
		if page >= 10 {
			break
		}
	}
	return out, nil
}

func (a *Ashop) fetchPage(ctx context.Context, page int) ([]ashopProduct, int, int, error) {
	url := a.categoryURL
	if page > 1 {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url = fmt.Sprintf("%s%spage=%d", url, sep, page)
	}

	doc, err := a.deps.Client.GetDocument(ctx, url)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("ashop page %d: %w", page, err)
	}

	raw := findProductData(doc)
	if raw == "" {
		return nil, 0, 0, nil
	}

	var payload ashopPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, 0, 0, fmt.Errorf("ashop product data: %w", err)
	}

	total, _ := payload.Total.Int64()
	perPage, _ := payload.PerPage.Int64()
	if perPage == 0 {
		perPage = int64(len(payload.Products))
	}
	return payload.Products, int(total), int(perPage), nil
}

// findProductData locates the element carrying the Vue `:product-data`
// binding. The attribute name contains a colon, so it is matched by
// walking attributes instead of a selector.
func findProductData(doc *goquery.Document) string {
	var raw string
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(":product-data"); ok {
			raw = v
			return false
		}
		return true
	})
	return raw
}

func (a *Ashop) toListing(p ashopProduct) domain.Listing {
	title := p.Name
	if title == "" {
		title = p.Title
	}
	if title == "" {
		title = "Okänd produkt"
	}

	desc := p.InfoPuff
	if desc == "" {
		desc = p.StatusName
	}

	url := p.URL
	if url == "" {
		url = fetch.AbsoluteURL(a.baseURL, p.Link)
	}

	var tagNames []string
	for _, t := range p.Tags {
		if t.Name != "" {
			tagNames = append(tagNames, t.Name)
		}
	}

	price, hasPrice := fetch.ExtractPrice(p.DisplayPrice)

	return domain.Listing{
		Title:       title,
		Description: desc,
		Price:       price,
		HasPrice:    hasPrice,
		URL:         url,
		ImageURL:    p.PuffImage,
		Location:    strings.Join(tagNames, ", "),
		Source:      a.name,
		Extra:       map[string]any{"source": "ashop", "product_id": p.ID.String()},
	}
}
