// Package catalog assembles the full provider set from shared
// infrastructure: one headless browser session for the script-rendered
// marketplaces and one rate-limited HTTP client for the storefronts.
package catalog

import (
	"go.uber.org/zap"

	"hifisearch/internal/config"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/blocket"
	"hifisearch/internal/provider/browser"
	"hifisearch/internal/provider/facebook"
	"hifisearch/internal/provider/fetch"
	"hifisearch/internal/provider/hifishark"
	"hifisearch/internal/provider/hifitorget"
	"hifisearch/internal/provider/storefront"
	"hifisearch/internal/provider/tradera"
)

// Build wires every known marketplace. The browser session is lazy, so
// runs that select only storefront sites never launch Chrome.
func Build(cfg config.Config, log *zap.Logger) []provider.Provider {
	session := browser.NewSession(cfg.Browser.Headless, cfg.Browser.DataDir, log)

	limiter := fetch.NewHostLimiter(cfg.Fetch.HostRatePerSecond, cfg.Fetch.HostBurst)
	client := fetch.NewClient(cfg.RequestTimeout(), cfg.Fetch.Retries, limiter, log)
	deps := storefront.Deps{Client: client}

	return []provider.Provider{
		blocket.New(session),
		tradera.New(session),
		facebook.New(session),
		hifishark.New(session),
		hifitorget.New(session),

		storefront.NewAshop("Reference Audio", "https://www.referenceaudio.se",
			"https://www.referenceaudio.se/kategori/935/begagnat", deps),
		storefront.NewAshop("Ljudmakarn", "https://www.ljudmakarn.se",
			"https://www.ljudmakarn.se/kategori/107/fyndhornan", deps),
		storefront.NewAshop("HiFi-Punkten", "https://www.hifi-punkten.se",
			"https://www.hifi-punkten.se/kategori/1/produkter", deps),

		storefront.NewStarweb("Rehifi", "https://www.rehifi.se", deps),
		storefront.NewStarweb("AudioPerformance", "https://www.audioperformance.se", deps),

		storefront.NewWooCommerce("HiFi Experience", "https://www.hifiexperience.se", deps),
		storefront.NewWooCommerce("AudioConcept", "https://www.audioconcept.se", deps),

		storefront.NewShopify("Lasses HiFi", "https://lasseshifi.se", "/collections/erbjudande", deps),

		storefront.NewPrestaShop("HiFi Puls", "https://www.hifipuls.se", deps),

		storefront.NewAbicart("Akkelis Audio", "https://www.akkelisaudio.com",
			"https://www.akkelisaudio.com/fyndhornan/", deps),
	}
}
