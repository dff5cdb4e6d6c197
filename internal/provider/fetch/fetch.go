// Package fetch is the shared HTTP layer for storefront providers:
// browser user agent, per-host rate limiting, bounded retries.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ErrGone marks a page the site has withdrawn (HTTP 410). Providers
// treat it as "no results here", not a fault.
var ErrGone = fmt.Errorf("page gone")

// StatusError is a non-2xx response that won't be retried.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

type Client struct {
	hc      *http.Client
	limiter *HostLimiter
	retries int
	log     *zap.Logger
}

func NewClient(timeout time.Duration, retries int, limiter *HostLimiter, log *zap.Logger) *Client {
	if retries < 1 {
		retries = 1
	}
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
		retries: retries,
		log:     log,
	}
}

// Get fetches a URL with retries and linear backoff between attempts.
// The caller owns the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		c.log.Debug("fetching", zap.String("url", url), zap.Int("attempt", attempt))
		res, err := c.hc.Do(req)
		if err == nil {
			switch {
			case res.StatusCode == http.StatusGone:
				res.Body.Close()
				return nil, ErrGone
			case res.StatusCode >= 500:
				res.Body.Close()
				lastErr = &StatusError{Code: res.StatusCode}
			case res.StatusCode >= 400:
				// client errors won't get better on retry
				res.Body.Close()
				return nil, &StatusError{Code: res.StatusCode}
			default:
				return res, nil
			}
		} else {
			lastErr = err
		}

		if attempt < c.retries {
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("get %s after %d attempts: %w", url, c.retries, lastErr)
}

// GetDocument fetches and parses an HTML page.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", url, err)
	}
	return doc, nil
}

// GetJSON fetches a URL and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	res, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode json %s: %w", url, err)
	}
	return nil
}
