package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hifisearch/internal/config"
	"hifisearch/internal/provider"
	"hifisearch/internal/provider/storefront"
)

func build(t *testing.T) map[string]provider.Provider {
	t.Helper()
	byName := make(map[string]provider.Provider)
	for _, p := range Build(config.Default(), zap.NewNop()) {
		require.NotContains(t, byName, p.Name(), "duplicate provider name")
		byName[p.Name()] = p
	}
	return byName
}

func TestBuildHasEveryMarketplace(t *testing.T) {
	byName := build(t)
	for _, name := range []string{
		"Blocket", "Tradera", "Facebook Marketplace", "HiFiShark", "HifiTorget",
		"Reference Audio", "Ljudmakarn", "HiFi-Punkten", "Rehifi",
		"AudioPerformance", "HiFi Experience", "AudioConcept", "Lasses HiFi",
		"Akkelis Audio", "HiFi Puls",
	} {
		assert.Contains(t, byName, name)
	}
	assert.Len(t, byName, 15)
}

func TestBuildAssignsShopPlatforms(t *testing.T) {
	// each shop must run on the platform its site actually serves, or
	// the provider quietly returns nothing forever
	byName := build(t)

	assert.IsType(t, &storefront.Ashop{}, byName["Reference Audio"])
	assert.IsType(t, &storefront.Ashop{}, byName["Ljudmakarn"])
	assert.IsType(t, &storefront.Ashop{}, byName["HiFi-Punkten"])
	assert.IsType(t, &storefront.Starweb{}, byName["Rehifi"])
	assert.IsType(t, &storefront.Starweb{}, byName["AudioPerformance"])
	assert.IsType(t, &storefront.WooCommerce{}, byName["HiFi Experience"])
	assert.IsType(t, &storefront.WooCommerce{}, byName["AudioConcept"])
	assert.IsType(t, &storefront.Shopify{}, byName["Lasses HiFi"])
	assert.IsType(t, &storefront.PrestaShop{}, byName["HiFi Puls"])
	assert.IsType(t, &storefront.Abicart{}, byName["Akkelis Audio"])
}

func TestBuildBrowserProvidersAreReleasable(t *testing.T) {
	byName := build(t)
	for _, name := range []string{"Blocket", "Tradera", "Facebook Marketplace", "HiFiShark", "HifiTorget"} {
		_, ok := byName[name].(provider.Releaser)
		assert.True(t, ok, "%s should hold the shared browser session", name)
	}
}
