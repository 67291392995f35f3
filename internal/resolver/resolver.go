package resolver

import (
	"context"

	"vgshop/listingresolver/helpers"
	"vgshop/listingresolver/logger"
	"vgshop/listingresolver/pkg/errors"
)

// Fallback listing values used when the PlayStation scrape fails. The
// placeholder keeps the caller-facing flow working through routine scraping
// hiccups; the outcome source marks it for telemetry.
const (
	fallbackImageURL  = "https://image.api.playstation.com/cdn/placeholder/product-default.png"
	fallbackPrice     = 59.99
	fallbackDiscount  = 23.99
	fallbackCurrency  = "GBP"
	fallbackTitleLead = "PlayStation Game"
)

// Resolver orchestrates identifier extraction, URL normalization, the
// storefront fetch and the price transform. It holds no per-call state;
// concurrent resolutions don't interfere.
type Resolver struct {
	steam      *SteamFetcher
	psn        *PSNScraper
	normalizer *Normalizer
	log        *logger.Logger
}

// New creates a resolver from its collaborators
func New(steam *SteamFetcher, psn *PSNScraper, normalizer *Normalizer) *Resolver {
	return &Resolver{
		steam:      steam,
		psn:        psn,
		normalizer: normalizer,
		log:        logger.ForResolver(),
	}
}

// Resolve turns a raw user-supplied identifier into a normalized listing.
//
// Steam-path failures surface to the caller. PlayStation scrape failures are
// absorbed into a deterministic fallback listing and never surface; only
// unsupported input rejects on that path.
func (r *Resolver) Resolve(ctx context.Context, rawInput string) (*Outcome, error) {
	id, err := ExtractIdentifier(rawInput)
	if err != nil {
		return nil, err
	}

	if id.Platform == PlatformSteam {
		return r.resolveSteam(ctx, id.ID, rawInput)
	}
	return r.resolvePSN(ctx, id.ID, rawInput)
}

func (r *Resolver) resolveSteam(ctx context.Context, appID, rawInput string) (*Outcome, error) {
	normalizedURL := r.normalizer.SteamAppURL(appID)

	data, err := r.steam.Fetch(ctx, appID)
	if err != nil {
		r.log.Error().Err(err).Str("app_id", appID).Msg("Steam resolution failed")
		return nil, err
	}

	listing := buildListing(data, PlatformSteam, normalizedURL, rawInput)

	r.log.Info().
		Str("app_id", appID).
		Str("title", listing.Title).
		Str("source", string(SourceLive)).
		Msg("Resolved Steam listing")

	return &Outcome{Listing: listing, Source: SourceLive}, nil
}

func (r *Resolver) resolvePSN(ctx context.Context, productID, rawInput string) (*Outcome, error) {
	normalizedURL := r.normalizer.PSNProductURL(productID)

	data, err := r.psn.Scrape(ctx, normalizedURL)
	if err != nil {
		if !errors.IsRecoverable(err) {
			return nil, err
		}
		// Availability over accuracy: a recoverable scrape failure
		// yields the placeholder listing instead of an error.
		r.log.Warn().
			Err(err).
			Str("product_id", productID).
			Str("source", string(SourceFallback)).
			Msg("Scrape failed, serving fallback listing")
		listing := fallbackListing(normalizedURL, rawInput)
		return &Outcome{Listing: listing, Source: SourceFallback}, nil
	}

	listing := buildListing(data, PlatformPSN, normalizedURL, rawInput)

	r.log.Info().
		Str("product_id", productID).
		Str("title", listing.Title).
		Str("source", string(SourceLive)).
		Msg("Resolved PlayStation listing")

	return &Outcome{Listing: listing, Source: SourceLive}, nil
}

// buildListing assembles the immutable output record from fetched data
func buildListing(data *ProductData, platform Platform, normalizedURL, originalURL string) ProductListing {
	return ProductListing{
		Title:       data.Title,
		Platform:    platform,
		ProductType: data.ProductType,
		Image:       data.Image,
		Price:       data.Price,
		Discounted:  Discounted(data.Price),
		Currency:    data.Currency,
		URL:         normalizedURL,
		OriginalURL: originalURL,
	}
}

// fallbackListing builds the deterministic placeholder for a failed scrape.
// The title carries the product id embedded in the normalized URL.
func fallbackListing(normalizedURL, originalURL string) ProductListing {
	productID, err := helpers.GetSplitPart(normalizedURL, "/product/", 1)
	if err != nil {
		productID = normalizedURL
	}
	return ProductListing{
		Title:       fallbackTitleLead + " (" + productID + ")",
		Platform:    PlatformPSN,
		ProductType: ProductTypeGame,
		Image:       fallbackImageURL,
		Price:       fallbackPrice,
		Discounted:  fallbackDiscount,
		Currency:    fallbackCurrency,
		URL:         normalizedURL,
		OriginalURL: originalURL,
	}
}
