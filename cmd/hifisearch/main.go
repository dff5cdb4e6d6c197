// Command hifisearch searches Swedish second-hand HiFi marketplaces from
// the terminal: the big sites through a headless browser, the specialist
// dealer storefronts over plain HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hifisearch/internal/config"
	"hifisearch/internal/diag"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/catalog"
	"hifisearch/internal/render"
	"hifisearch/internal/search"
)

type options struct {
	Search   []string `short:"s" long:"search" required:"true" description:"Term to search for (repeat for multiple terms)"`
	Days     int      `short:"d" long:"days" description:"Only keep listings from the last N days"`
	Include  []string `short:"i" long:"include" description:"Only search these sites"`
	Exclude  []string `short:"e" long:"exclude" description:"Search every site except these"`
	Sort     string   `long:"sort" choice:"date" choice:"site" choice:"price" default:"date" description:"Result ordering"`
	MinPrice float64  `long:"min-price" description:"Lowest price to keep (kr)"`
	MaxPrice float64  `long:"max-price" description:"Highest price to keep (kr)"`
	Config   string   `short:"c" long:"config" description:"Path to a yaml config file"`
	NoColor  bool     `long:"no-color" description:"Plain output without ANSI colors"`
	Debug    bool     `long:"debug" description:"Verbose logging"`
}

func newLogger(debug bool) *zap.Logger {
	level := zap.WarnLevel
	if debug {
		level = zap.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		return 2
	}
	if len(opts.Include) > 0 && len(opts.Exclude) > 0 {
		fmt.Fprintln(os.Stderr, "error: --include and --exclude are mutually exclusive")
		return 2
	}
	if opts.MinPrice > 0 && opts.MaxPrice > 0 && opts.MinPrice > opts.MaxPrice {
		fmt.Fprintln(os.Stderr, "error: --min-price is above --max-price")
		return 2
	}

	log := newLogger(opts.Debug)
	defer log.Sync()

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load config: %v\n", err)
		return 1
	}
	cfg, validation := config.NormalizeAndValidate(cfg)
	for _, w := range validation.Warnings {
		log.Warn(w)
	}
	if !validation.OK() {
		for _, e := range validation.Errors {
			fmt.Fprintf(os.Stderr, "error: config: %s\n", e)
		}
		return 1
	}

	if cfg.Browser.DataDir == "" {
		if cache, err := os.UserCacheDir(); err == nil {
			cfg.Browser.DataDir = filepath.Join(cache, "hifisearch", "chrome")
		}
	}
	if cfg.Browser.DataDir != "" {
		if err := os.MkdirAll(cfg.Browser.DataDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error: browser data dir: %v\n", err)
			return 1
		}
		// one browser per profile dir; a second concurrent run would
		// corrupt the Chrome profile
		lock := flock.New(filepath.Join(cfg.Browser.DataDir, "hifisearch.lock"))
		locked, err := lock.TryLock()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: profile lock: %v\n", err)
			return 1
		}
		if !locked {
			fmt.Fprintln(os.Stderr, "error: another hifisearch run is already using the browser profile")
			return 1
		}
		defer lock.Unlock()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := diag.NewLogReporter(log)
	providers := catalog.Build(cfg, log)
	selected := provider.Select(providers, opts.Include, opts.Exclude, rep)
	if len(selected) == 0 {
		fmt.Fprintln(os.Stderr, "error: no sites selected")
		return 1
	}

	// release under a fresh context; the signal context is usually
	// already canceled by the time we get here on Ctrl-C
	defer provider.ReleaseAll(context.Background(), selected, cfg.ReleaseTimeout(), rep)

	orch := search.NewOrchestrator(selected, cfg.ProviderTimeout(), rep, log)
	engine := search.NewEngine(search.NewExpander(cfg.Synonyms), orch, log)

	order := make([]string, 0, len(selected))
	for _, p := range selected {
		order = append(order, p.Name())
	}

	now := time.Now()
	table := render.NewTable(os.Stdout, !opts.NoColor, now)

	for _, term := range opts.Search {
		results, err := engine.Run(ctx, term, opts.MinPrice, opts.MaxPrice)
		if err != nil {
			// interrupted mid-search; whatever was gathered is not a
			// complete answer, so don't show it
			log.Warn("search interrupted", zap.String("term", term), zap.Error(err))
			fmt.Fprintln(os.Stderr, "Search interrupted.")
			return 130
		}

		results = search.FilterByDays(results, opts.Days, now)
		listings := search.Flatten(results, order)
		search.SortListings(listings, opts.Sort, now)

		if len(opts.Search) > 1 {
			fmt.Printf("\n== %s ==\n", term)
		}
		table.Print(listings)
	}
	return 0
}
