package resolver

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"vgshop/listingresolver/helpers"
	"vgshop/listingresolver/logger"
	"vgshop/listingresolver/pkg/errors"
)

// SteamFetcher retrieves product data from Steam's public appdetails API.
// The country code is pinned to the UK so prices are quoted in GBP.
type SteamFetcher struct {
	fetcher *helpers.HTTPFetcher
	apiBase string
	log     *logger.Logger
}

// NewSteamFetcher creates a Steam fetcher against the given store base URL
func NewSteamFetcher(fetcher *helpers.HTTPFetcher, apiBase string) *SteamFetcher {
	if apiBase == "" {
		apiBase = DefaultSteamStoreURL
	}
	return &SteamFetcher{
		fetcher: fetcher,
		apiBase: strings.TrimRight(apiBase, "/"),
		log:     logger.ForFetcher(string(PlatformSteam)),
	}
}

// Fetch calls the appdetails API for the given app id
func (f *SteamFetcher) Fetch(ctx context.Context, appID string) (*ProductData, error) {
	url := f.apiBase + "/api/appdetails?appids=" + appID + "&cc=gb&l=english"

	body, err := f.fetcher.FetchJSON(ctx, url)
	if err != nil {
		return nil, errors.NewUpstreamUnavailable(string(PlatformSteam),
			"appdetails request failed", err)
	}

	// The response object is keyed by the requested app id
	app := gjson.GetBytes(body, appID)
	if !app.Get("success").Bool() {
		return nil, errors.NewUpstreamUnavailable(string(PlatformSteam),
			"appdetails reported no success for app "+appID, nil)
	}

	data := app.Get("data")

	productType := ProductTypeGame
	if data.Get("type").String() == "dlc" {
		productType = ProductTypeDLC
	}

	price := 0.0
	currency := "GBP"
	if !data.Get("is_free").Bool() {
		if overview := data.Get("price_overview"); overview.Exists() {
			// Upstream quotes the price in minor units (pence)
			price = overview.Get("initial").Float() / 100
			if c := overview.Get("currency").String(); c != "" {
				currency = c
			}
		}
	}

	f.log.Debug().
		Str("app_id", appID).
		Float64("price", price).
		Str("currency", currency).
		Msg("Fetched app details")

	return &ProductData{
		Title:       data.Get("name").String(),
		Image:       data.Get("header_image").String(),
		Price:       price,
		Currency:    currency,
		ProductType: productType,
	}, nil
}
