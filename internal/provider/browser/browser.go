// Package browser owns the headless Chrome session shared by the
// marketplace providers that need JavaScript rendering. The browser is
// launched lazily on first use and torn down through Release.
package browser

import (
	"context"
	"sync"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

type Session struct {
	mu          sync.Mutex
	headless    bool
	dataDir     string
	allocCtx    context.Context
	allocCancel context.CancelFunc
	log         *zap.Logger
}

func NewSession(headless bool, dataDir string, log *zap.Logger) *Session {
	return &Session{headless: headless, dataDir: dataDir, log: log}
}

func launchOpts(headless bool, dataDir string) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
	}
	if headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}
	if dataDir != "" {
		opts = append(opts, chromedp.UserDataDir(dataDir))
	}
	return opts
}

// Run executes actions in a fresh tab. The tab is tied to ctx, so the
// per-provider timeout covers navigation, waits and extraction as one
// unit.
func (s *Session) Run(ctx context.Context, actions ...chromedp.Action) error {
	s.mu.Lock()
	if s.allocCtx == nil {
		s.log.Debug("launching browser", zap.Bool("headless", s.headless))
		s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(
			context.Background(),
			launchOpts(s.headless, s.dataDir)...,
		)
	}
	alloc := s.allocCtx
	s.mu.Unlock()

	tabCtx, tabCancel := chromedp.NewContext(alloc)
	defer tabCancel()

	// the tab context descends from the allocator, not the caller, so
	// wire the caller's cancellation/deadline across by hand
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Release shuts the browser down. Safe to call repeatedly or when the
// browser was never launched.
func (s *Session) Release(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.allocCancel == nil {
		return nil
	}
	s.log.Debug("closing browser")
	s.allocCancel()
	s.allocCtx = nil
	s.allocCancel = nil
	return nil
}

// HideWebDriver patches the JS surface sites inspect for automation.
func HideWebDriver() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		return chromedp.Evaluate(`
			Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
			Object.defineProperty(navigator, 'languages', { get: () => ['sv-SE', 'sv', 'en'] });
		`, nil).Do(ctx)
	})
}

// Row is the shape every extraction script returns per listing card.
type Row struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Price    string `json:"price"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Image    string `json:"image"`
}
