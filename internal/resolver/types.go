package resolver

// Platform identifies the source storefront
type Platform string

const (
	PlatformSteam Platform = "Steam"
	PlatformPSN   Platform = "PSN"
)

// ProductType classifies a storefront product
type ProductType string

const (
	ProductTypeGame ProductType = "Game"
	ProductTypeDLC  ProductType = "DLC"
)

// ProductListing is the normalized record returned to the caller. It is
// built once per resolution and never mutated afterwards.
type ProductListing struct {
	Title       string      `json:"title"`
	Platform    Platform    `json:"platform"`
	ProductType ProductType `json:"productType"`
	Image       string      `json:"image"`
	Price       float64     `json:"price"`
	Discounted  float64     `json:"discounted"`
	Currency    string      `json:"currency"`
	URL         string      `json:"url"`
	OriginalURL string      `json:"originalUrl"`
}

// PlatformIdentifier is the canonical platform-specific id extracted from a
// raw input string. Steam ids are numeric app ids; PlayStation ids are
// product codes in <BASE>-<SKU>_<NN> form (or a verbatim passthrough id).
type PlatformIdentifier struct {
	Platform Platform
	ID       string
}

// ProductData is the raw output contract shared by both storefront fetchers
type ProductData struct {
	Title       string
	Image       string
	Price       float64
	Currency    string
	ProductType ProductType
}

// Source tags how a resolution outcome was produced
type Source string

const (
	// SourceLive means the listing was built from fresh upstream data
	SourceLive Source = "live"
	// SourceFallback means the scrape failed and the listing is the
	// deterministic placeholder
	SourceFallback Source = "fallback"
)

// Outcome is the tagged result of one resolution. The source field keeps
// fallback listings distinguishable from genuine successes in logs and
// telemetry.
type Outcome struct {
	Listing ProductListing `json:"listing"`
	Source  Source         `json:"source"`
}
