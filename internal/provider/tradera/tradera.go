// Package tradera searches Tradera.com auctions.
package tradera

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

const baseURL = "https://www.tradera.com"

type Provider struct {
	session *browser.Session
}

func New(session *browser.Session) *Provider {
	return &Provider{session: session}
}

func (p *Provider) Name() string { return "Tradera" }

func (p *Provider) Release(ctx context.Context) error { return p.session.Release(ctx) }

const extractJS = `
(() => {
	const rows = [];
	const cards = document.querySelectorAll('article, [class*="item-card" i]');
	for (const card of cards) {
		const link = card.querySelector('a[href*="/item/"]') || card.querySelector('a[href*="/auktion/"]');
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

		// auction cards show the end time ("Slutar 22 okt") rather
		// than a posting date
		let date = pick(['time', '[class*="time-left" i]', '[class*="date" i]']);
		const m = card.textContent.match(/slutar\s+(\d{1,2}\s+\w{3})/i);
		if (!date && m) date = 'Slutar ' + m[1];

		rows.push({
			title: pick(['h2', 'h3', '[class*="title" i]', '[class*="heading" i]']) || link.getAttribute('title') || '',
			url: href.startsWith('/') ? 'https://www.tradera.com' + href : href,
			price: pick(['[class*="price" i]', '[class*="bid" i]']),
			date: date,
			location: '',
			image: card.querySelector('img')?.src || '',
		});
	}
	return rows;
})()
`

func (p *Provider) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", baseURL, url.QueryEscape(q.Term))
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
		chromedp.Sleep(4*time.Second),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(extractJS, &rows),
	)
	if err != nil {
		return nil, fmt.Errorf("tradera search: %w", err)
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
			Source:     p.Name(),
			Extra:      map[string]any{"source": "tradera"},
		}
		if !q.InBounds(l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
