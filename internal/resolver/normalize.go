package resolver

import "strings"

// Default storefront bases; overridable through config for tests and mirrors
const (
	DefaultSteamStoreURL = "https://store.steampowered.com"
	DefaultPSNStoreURL   = "https://store.playstation.com"
)

// Normalizer builds one canonical fetch URL per platform. PlayStation URLs
// always use the en-gb region path regardless of the region in the caller's
// input, so pricing currency stays consistent across regions.
type Normalizer struct {
	steamBase string
	psnBase   string
}

// NewNormalizer creates a normalizer with the given storefront bases.
// Empty bases fall back to the public stores.
func NewNormalizer(steamBase, psnBase string) *Normalizer {
	if steamBase == "" {
		steamBase = DefaultSteamStoreURL
	}
	if psnBase == "" {
		psnBase = DefaultPSNStoreURL
	}
	return &Normalizer{
		steamBase: strings.TrimRight(steamBase, "/"),
		psnBase:   strings.TrimRight(psnBase, "/"),
	}
}

// SteamAppURL reconstructs the canonical store URL for an app id
func (n *Normalizer) SteamAppURL(appID string) string {
	return n.steamBase + "/app/" + appID
}

// PSNProductURL builds the canonical en-gb product URL for a product id
func (n *Normalizer) PSNProductURL(productID string) string {
	return n.psnBase + "/en-gb/product/" + productID
}

// Normalize maps an extracted identifier to its canonical fetch URL
func (n *Normalizer) Normalize(id PlatformIdentifier) string {
	if id.Platform == PlatformSteam {
		return n.SteamAppURL(id.ID)
	}
	return n.PSNProductURL(id.ID)
}
