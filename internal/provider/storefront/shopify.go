package storefront

import (
	"context"
	"encoding/json"
	"fmt"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/fetch"
)

// Shopify collections expose their contents at /products.json; matching
// against the query happens locally.
type Shopify struct {
	name           string
	baseURL        string
	collectionPath string
	deps           Deps
}

func NewShopify(name, baseURL, collectionPath string, deps Deps) *Shopify {
	return &Shopify{name: name, baseURL: baseURL, collectionPath: collectionPath, deps: deps}
}

func (s *Shopify) Name() string { return s.name }

type shopifyProduct struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Handle      string      `json:"handle"`
	BodyHTML    string      `json:"body_html"`
	PublishedAt string      `json:"published_at"`
	Variants    []struct {
		Price string `json:"price"`
	} `json:"variants"`
	Image struct {
		Src string `json:"src"`
	} `json:"image"`
}

func (s *Shopify) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	var out []domain.Listing

	for page := 1; page <= 5; page++ {
		pageURL := fmt.Sprintf("%s%s/products.json?page=%d&limit=250", s.baseURL, s.collectionPath, page)

		var payload struct {
			Products []shopifyProduct `json:"products"`
		}
		if err := s.deps.Client.GetJSON(ctx, pageURL, &payload); err != nil {
			return nil, fmt.Errorf("shopify page %d: %w", page, err)
		}
		if len(payload.Products) == 0 {
			break
		}

		for _, p := range payload.Products {
			if !matchesQuery(q.Term, p.Title) {
				continue
			}
			l := s.toListing(p)
			if !q.InBounds(l) {
				continue
			}
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Shopify) toListing(p shopifyProduct) domain.Listing {
	price := 0.0
	hasPrice := false
	if len(p.Variants) > 0 {
		price, hasPrice = fetch.ExtractPrice(p.Variants[0].Price)
	}

	return domain.Listing{
		Title:       p.Title,
		Description: fetch.StripHTML(p.BodyHTML),
		Price:       price,
		HasPrice:    hasPrice,
		URL:         fmt.Sprintf("%s/products/%s", s.baseURL, p.Handle),
		ImageURL:    p.Image.Src,
		PostedDate:  p.PublishedAt,
		Source:      s.name,
		Extra:       map[string]any{"source": "shopify", "product_id": p.ID.String()},
	}
}
