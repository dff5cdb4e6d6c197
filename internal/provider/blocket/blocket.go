// Package blocket searches Blocket.se. Listings load through JavaScript,
// so extraction runs inside a headless tab.
package blocket

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/browser"
	"hifisearch/internal/provider/fetch"
)

const baseURL = "https://www.blocket.se"

type Provider struct {
	session *browser.Session
}

func New(session *browser.Session) *Provider {
	return &Provider{session: session}
}

func (p *Provider) Name() string { return "Blocket" }

func (p *Provider) Release(ctx context.Context) error { return p.session.Release(ctx) }

const extractJS = `
(() => {
	const rows = [];
	const articles = document.querySelectorAll('article');
	for (const card of articles) {
		const link = card.querySelector('a[href*="/annons"]') || card.querySelector('a[href]');
		if (!link) continue;
		const href = link.getAttribute('href') || '';
		if (!href) continue;

		const pick = (sels) => {
			for (const sel of sels) {
				const el = card.querySelector(sel);
				if (el && el.textContent.trim()) return el.textContent.trim();
			}
			return '';
		};

		rows.push({
			title: pick(['h2', 'h3', '[class*="title" i]']) || link.textContent.trim(),
			url: href.startsWith('/') ? 'https://www.blocket.se' + href : href,
			price: pick(['[class*="price" i]']),
			date: pick(['time', '[class*="time" i]', '[class*="date" i]']),
			location: pick(['[class*="location" i]', '[class*="area" i]']),
			image: card.querySelector('img')?.src || '',
		});
	}
	return rows;
})()
`

func (p *Provider) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	searchURL := fmt.Sprintf("%s/annonser/hela_sverige?q=%s", baseURL, url.QueryEscape(q.Term))
	if q.MinPrice > 0 {
		searchURL += fmt.Sprintf("&price_min=%d", int(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		searchURL += fmt.Sprintf("&price_max=%d", int(q.MaxPrice))
	}

	var rows []browser.Row
	err := p.session.Run(ctx,
		chromedp.Navigate(searchURL),
		browser.HideWebDriver(),
		chromedp.Sleep(5*time.Second),
		// lazy loading needs a few scrolls before cards materialize
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(extractJS, &rows),
	)
	if err != nil {
		return nil, fmt.Errorf("blocket search: %w", err)
	}

	var out []domain.Listing
	seen := make(map[string]bool)
	for _, r := range rows {
		if r.Title == "" || r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true

		price, hasPrice := fetch.ExtractPrice(r.Price)
		l := domain.Listing{
			Title:      fetch.CleanText(r.Title),
			Price:      price,
			HasPrice:   hasPrice,
			URL:        r.URL,
			ImageURL:   r.Image,
			PostedDate: fetch.CleanText(r.Date),
			Location:   fetch.CleanText(r.Location),
			Source:     p.Name(),
			Extra:      map[string]any{"source": "blocket"},
		}
		if !q.InBounds(l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
