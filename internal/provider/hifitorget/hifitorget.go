// Package hifitorget searches HifiTorget.se, the Swedish second-hand
// hifi classifieds board.
package hifitorget

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/browser"
	"hifisearch/internal/provider/fetch"
)

const baseURL = "https://www.hifitorget.se"

type Provider struct {
	session *browser.Session
}

func New(session *browser.Session) *Provider {
	return &Provider{session: session}
}

func (p *Provider) Name() string { return "HifiTorget" }

func (p *Provider) Release(ctx context.Context) error { return p.session.Release(ctx) }

const extractJS = `
(() => {
	const rows = [];
	const cards = document.querySelectorAll('[class*="annons" i], article, .listing');
	const seen = new Set();
	for (const card of cards) {
		const link = card.querySelector('a[href*="annons"]') || card.querySelector('a[href]');
		if (!link) continue;
		let href = link.getAttribute('href') || '';
		if (!href || href.startsWith('#')) continue;
		if (href.startsWith('/')) href = 'https://www.hifitorget.se' + href;
		if (seen.has(href)) continue;
		seen.add(href);

		const pick = (sels) => {
			for (const sel of sels) {
				const el = card.querySelector(sel);
				if (el && el.textContent.trim()) return el.textContent.trim();
			}
			return '';
		};

		// dates on cards look like "2024-10-15" or "Idag 14:32"
		const dm = card.textContent.match(/\d{4}-\d{2}-\d{2}|idag\s+\d{1,2}:\d{2}|igår\s+\d{1,2}:\d{2}/i);

		rows.push({
			title: pick(['h2', 'h3', '[class*="title" i]', '[class*="rubrik" i]']) || link.textContent.trim(),
			url: href,
			price: pick(['[class*="price" i], [class*="pris" i]']),
			date: dm ? dm[0] : pick(['time', '[class*="date" i], [class*="datum" i]']),
			location: pick(['[class*="location" i], [class*="ort" i]']),
			image: card.querySelector('img')?.src || '',
		});
	}
	return rows;
})()
`

func (p *Provider) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	searchURL := fmt.Sprintf("%s/?q=%s", baseURL, url.QueryEscape(q.Term))

	var rows []browser.Row
	err := p.session.Run(ctx,
		chromedp.Navigate(searchURL),
		browser.HideWebDriver(),
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(extractJS, &rows),
	)
	if err != nil {
		return nil, fmt.Errorf("hifitorget search: %w", err)
	}

	var out []domain.Listing
	for _, r := range rows {
		if r.Title == "" || r.URL == "" {
			continue
		}
		// the board renders everything server-side, so narrow to cards
		// actually mentioning the query
		if !containsFold(r.Title, q.Term) {
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
			Extra:      map[string]any{"source": "hifitorget"},
		}
		if !q.InBounds(l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
