// Package facebook searches Facebook Marketplace for the Stockholm
// region. Works without a logged-in session; results are what the
// public search page renders.
package facebook

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

const baseURL = "https://www.facebook.com"

type Provider struct {
	session *browser.Session
}

func New(session *browser.Session) *Provider {
	return &Provider{session: session}
}

func (p *Provider) Name() string { return "Facebook Marketplace" }

func (p *Provider) Release(ctx context.Context) error { return p.session.Release(ctx) }

const extractJS = `
(() => {
	const rows = [];
	const links = document.querySelectorAll('a[href*="/marketplace/item/"]');
	const seen = new Set();
	for (const link of links) {
		let href = link.getAttribute('href') || '';
		if (!href) continue;
		href = href.split('?')[0];
		if (href.startsWith('/')) href = 'https://www.facebook.com' + href;
		if (seen.has(href)) continue;
		seen.add(href);

		// marketplace cards put price, title and place on separate
		// text lines inside the anchor
		const lines = link.innerText.split('\n').map(s => s.trim()).filter(Boolean);
		let price = '', title = '', location = '';
		for (const line of lines) {
			if (!price && /\d/.test(line) && /(kr|sek|\$|€)/i.test(line)) { price = line; continue; }
			if (!title) { title = line; continue; }
			if (!location) { location = line; }
		}

		rows.push({
			title: title,
			url: href,
			price: price,
			date: link.querySelector('abbr')?.getAttribute('aria-label') || '',
			location: location,
			image: link.querySelector('img')?.src || '',
		});
	}
	return rows;
})()
`

func (p *Provider) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	searchURL := fmt.Sprintf("%s/marketplace/stockholm/search?query=%s", baseURL, url.QueryEscape(q.Term))
	if q.MinPrice > 0 {
		searchURL += fmt.Sprintf("&minPrice=%d", int(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		searchURL += fmt.Sprintf("&maxPrice=%d", int(q.MaxPrice))
	}

	var rows []browser.Row
	err := p.session.Run(ctx,
		chromedp.Navigate(searchURL),
		browser.HideWebDriver(),
		chromedp.Sleep(6*time.Second),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(extractJS, &rows),
	)
	if err != nil {
		return nil, fmt.Errorf("facebook search: %w", err)
	}

	var out []domain.Listing
	for _, r := range rows {
		if r.Title == "" || r.URL == "" {
			continue
		}
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
			Extra:      map[string]any{"source": "facebook_marketplace"},
		}
		if !q.InBounds(l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
