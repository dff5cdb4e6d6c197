package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/fetch"
)

// WooCommerce uses the public Store API (wp-json/wc/store/products),
// which does server-side search and returns structured products.
type WooCommerce struct {
	name     string
	baseURL  string
	endpoint string
	perPage  int
	deps     Deps
}

func NewWooCommerce(name, baseURL string, deps Deps) *WooCommerce {
	return &WooCommerce{
		name:     name,
		baseURL:  baseURL,
		endpoint: baseURL + "/wp-json/wc/store/products",
		perPage:  20,
		deps:     deps,
	}
}

func (w *WooCommerce) Name() string { return w.name }

type wooProduct struct {
	ID               json.Number `json:"id"`
	Name             string      `json:"name"`
	ShortDescription string      `json:"short_description"`
	Permalink        string      `json:"permalink"`
	DateCreated      string      `json:"date_created"`
	Prices           struct {
		Price             string `json:"price"`
		CurrencyMinorUnit int    `json:"currency_minor_unit"`
	} `json:"prices"`
	Images []struct {
		Src string `json:"src"`
	} `json:"images"`
}

func (w *WooCommerce) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	var out []domain.Listing

	for page := 1; page <= 5; page++ {
		pageURL := fmt.Sprintf("%s?search=%s&page=%d&per_page=%d",
			w.endpoint, url.QueryEscape(q.Term), page, w.perPage)

		var products []wooProduct
		err := w.deps.Client.GetJSON(ctx, pageURL, &products)
		if err != nil {
			// the Store API answers 400 when paging past the end
			var se *fetch.StatusError
			if errors.As(err, &se) && se.Code == 400 {
				break
			}
			return nil, fmt.Errorf("woocommerce page %d: %w", page, err)
		}
		if len(products) == 0 {
			break
		}

		for _, p := range products {
			l := w.toListing(p)
			if !q.InBounds(l) {
				continue
			}
			out = append(out, l)
		}
	}
	return out, nil
}

func (w *WooCommerce) toListing(p wooProduct) domain.Listing {
	title := p.Name
	if title == "" {
		title = "Okänd produkt"
	}

	var price float64
	hasPrice := false
	if p.Prices.Price != "" {
		if raw, err := strconv.ParseFloat(p.Prices.Price, 64); err == nil {
			price = raw / math.Pow10(p.Prices.CurrencyMinorUnit)
			hasPrice = true
		}
	}

	imageURL := ""
	if len(p.Images) > 0 {
		imageURL = p.Images[0].Src
	}

	return domain.Listing{
		Title:       title,
		Description: fetch.StripHTML(p.ShortDescription),
		Price:       price,
		HasPrice:    hasPrice,
		URL:         p.Permalink,
		ImageURL:    imageURL,
		PostedDate:  p.DateCreated,
		Source:      w.name,
		Extra:       map[string]any{"source": "woocommerce", "product_id": p.ID.String()},
	}
}
