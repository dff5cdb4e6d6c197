// Package hifishark searches HiFiShark.com with the Sweden filter.
// HiFiShark is itself an aggregator: each hit links to the marketplace
// that originally listed the item, and that origin site is kept in the
// listing's Extra so display and sorting can use it.
package hifishark

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"hifisearch/internal/domain"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/browser"
	"hifisearch/internal/provider/fetch"
)

const baseURL = "https://www.hifishark.com"

type Provider struct {
	session *browser.Session
}

func New(session *browser.Session) *Provider {
	return &Provider{session: session}
}

func (p *Provider) Name() string { return "HiFiShark" }

func (p *Provider) Release(ctx context.Context) error { return p.session.Release(ctx) }

type hit struct {
	Description  string `json:"description"`
	DisplayPrice string `json:"display_price"`
	URL          string `json:"url"`
	ImageURL     string `json:"image_url"`
	SiteID       any    `json:"site_id"`
	Price        *struct {
		Value float64 `json:"value"`
	} `json:"price"`
	Location struct {
		CountryISO string `json:"country_iso"`
	} `json:"location"`
	DisplayDateStr string  `json:"display_date_str"`
	DisplayDate    float64 `json:"display_date"`
	LastSeenStr    string  `json:"last_seen_str"`
}

// collectJS drains the page's searchResults object and pages through the
// site's internal /searchSlice endpoint for anything beyond the first 48
// hits.
const collectJS = `
(async () => {
	if (typeof searchResults === 'undefined' || !searchResults || !searchResults.hits) return [];
	const hits = [...searchResults.hits];
	const total = searchResults.total || hits.length;
	if (typeof searchInfo !== 'undefined' && searchInfo && total > hits.length) {
		let offset = hits.length;
		while (offset < total) {
			const params = new URLSearchParams();
			const fmt = v => v === null || v === undefined ? '' :
				(typeof v === 'boolean' ? (v ? 'true' : 'false') : String(v));
			Object.entries(searchInfo).forEach(([k, v]) => params.append('searchInfo[' + k + ']', fmt(v)));
			params.set('searchInfo[from]', String(offset));
			params.set('searchInfo[totalHits]', String(total));

			const resp = await fetch('/searchSlice', {
				method: 'POST',
				headers: {
					'Content-Type': 'application/x-www-form-urlencoded; charset=UTF-8',
					'X-Requested-With': 'XMLHttpRequest'
				},
				body: params.toString()
			});
			if (!resp.ok) break;
			const data = await resp.json();
			if (!data || !data.hits || data.hits.length === 0) break;
			hits.push(...data.hits);
			offset += data.hits.length;
			await new Promise(r => setTimeout(r, 400));
		}
	}
	return hits;
})()
`

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

func (p *Provider) Search(ctx context.Context, q provider.Query) ([]domain.Listing, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s&country_iso=SE", baseURL, url.QueryEscape(q.Term))
	if q.MinPrice > 0 {
		searchURL += fmt.Sprintf("&minPrice=%d", int(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		searchURL += fmt.Sprintf("&maxPrice=%d", int(q.MaxPrice))
	}

	var hits []hit
	err := p.session.Run(ctx,
		chromedp.Navigate(searchURL),
		browser.HideWebDriver(),
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(collectJS, &hits, awaitPromise),
	)
	if err != nil {
		return nil, fmt.Errorf("hifishark search: %w", err)
	}

	var out []domain.Listing
	for _, h := range hits {
		l, ok := p.parseHit(h)
		if !ok || !q.InBounds(l) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (p *Provider) parseHit(h hit) (domain.Listing, bool) {
	// the Sweden URL parameter is advisory; enforce it here
	if strings.ToLower(h.Location.CountryISO) != "se" {
		return domain.Listing{}, false
	}
	title := strings.TrimSpace(h.Description)
	if title == "" || h.URL == "" {
		return domain.Listing{}, false
	}

	price := 0.0
	hasPrice := false
	if h.Price != nil {
		price = h.Price.Value
		hasPrice = true
	}

	posted := h.DisplayDateStr
	if posted == "" && h.DisplayDate > 0 {
		posted = time.Unix(int64(h.DisplayDate), 0).Format("2006-01-02")
	}

	return domain.Listing{
		Title:       title,
		Description: h.DisplayPrice,
		Price:       price,
		HasPrice:    hasPrice,
		URL:         fetch.AbsoluteURL(baseURL, h.URL),
		ImageURL:    h.ImageURL,
		PostedDate:  posted,
		Location:    "Sweden",
		Source:      p.Name(),
		Extra: map[string]any{
			"source":      "hifishark",
			"source_site": originSite(h),
			"country_iso": strings.ToLower(h.Location.CountryISO),
			"site_id":     h.SiteID,
			"last_seen":   h.LastSeenStr,
		},
	}, true
}

// originSite recovers the marketplace a hit was first listed on. Direct
// links carry it in the host; redirect links usually betray it through
// the image CDN URL.
func originSite(h hit) string {
	if strings.HasPrefix(h.URL, "http://") || strings.HasPrefix(h.URL, "https://") {
		if u, err := url.Parse(h.URL); err == nil && u.Host != "" {
			return strings.TrimPrefix(u.Host, "www.")
		}
	}

	img := strings.ToLower(h.ImageURL)
	switch {
	case img == "":
		return ""
	case strings.Contains(img, "blocket"):
		return "blocket.se"
	case strings.Contains(img, "tradera"):
		return "tradera.com"
	case strings.Contains(img, "hifitorget"):
		return "hifitorget.se"
	}
	if u, err := url.Parse(h.ImageURL); err == nil && u.Host != "" {
		host := strings.TrimPrefix(u.Host, "www.")
		if !strings.HasPrefix(host, "hifishark") {
			return host
		}
	}
	return ""
}
