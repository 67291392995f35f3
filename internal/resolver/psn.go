package resolver

import (
	"context"
	stderrors "errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"vgshop/listingresolver/helpers"
	"vgshop/listingresolver/logger"
	"vgshop/listingresolver/pkg/errors"
	"vgshop/listingresolver/services/cache"
)

// Selectors contains the CSS selectors used against the PlayStation store
// page. The markup is unstable; every selector has a fallback or tolerates
// a miss.
type Selectors struct {
	Title          string
	Image          string
	MetaImage      string
	PricePrimary   string
	PriceSecondary string
	Breadcrumb     string
}

// DefaultSelectors returns the selectors for the current store markup
func DefaultSelectors() Selectors {
	return Selectors{
		Title:          `h1[data-qa="mfe-game-title#name"]`,
		Image:          `img[data-qa="gameBackgroundImage#heroImage#image"]`,
		MetaImage:      `meta[property="og:image"]`,
		PricePrimary:   `span[data-qa="mfeCtaMain#offer0#finalPrice"]`,
		PriceSecondary: `span[data-qa="mfeCtaMain#offer0#originalPrice"]`,
		Breadcrumb:     `nav[data-qa="breadcrumbs"]`,
	}
}

// Price text must be a currency symbol followed by a decimal number
var psnPricePattern = regexp.MustCompile(`([£€$])\s*([0-9]+(?:[.,][0-9]{1,2})?)`)

var currencyBySymbol = map[string]string{
	"£": "GBP",
	"€": "EUR",
	"$": "USD",
}

const psnBlockKey = "psn_rate_limited"

// PSNScraper retrieves product data by fetching and parsing the normalized
// store page. A failed page fetch is fatal to the scrape; missing elements
// only yield empty or zero values.
type PSNScraper struct {
	fetcher   *helpers.HTTPFetcher
	cacheSvc  cache.CacheService
	selectors Selectors
	blockTime time.Duration
	log       *logger.Logger
}

// NewPSNScraper creates a scraper. cacheSvc may be nil, which disables the
// rate-limit guard.
func NewPSNScraper(fetcher *helpers.HTTPFetcher, cacheSvc cache.CacheService, blockTime time.Duration) *PSNScraper {
	return &PSNScraper{
		fetcher:   fetcher,
		cacheSvc:  cacheSvc,
		selectors: DefaultSelectors(),
		blockTime: blockTime,
		log:       logger.ForFetcher(string(PlatformPSN)),
	}
}

// Scrape fetches the page at url and extracts the product data
func (s *PSNScraper) Scrape(ctx context.Context, url string) (*ProductData, error) {
	reader, err := s.fetchWithGuard(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, errors.NewScrapeFailed(string(PlatformPSN), "HTML parse failed", err)
	}

	title := helpers.CollapseWhitespace(doc.Find(s.selectors.Title).First().Text())
	image := s.extractImage(doc)
	price, currency := s.extractPrice(doc)

	productType := ProductTypeGame
	breadcrumb := strings.ToLower(doc.Find(s.selectors.Breadcrumb).Text())
	if strings.Contains(breadcrumb, "dlc") || strings.Contains(breadcrumb, "add-on") ||
		strings.Contains(strings.ToLower(title), "dlc") || strings.Contains(strings.ToLower(title), "add-on") {
		productType = ProductTypeDLC
	}

	s.log.Debug().
		Str("url", url).
		Str("title", title).
		Float64("price", price).
		Str("currency", currency).
		Msg("Scraped product page")

	return &ProductData{
		Title:       title,
		Image:       image,
		Price:       price,
		Currency:    currency,
		ProductType: productType,
	}, nil
}

// fetchWithGuard fetches the page unless a recent 429 marked the store as
// rate limited. A 429 sets the block marker for blockTime.
func (s *PSNScraper) fetchWithGuard(ctx context.Context, url string) (io.Reader, error) {
	if s.cacheSvc != nil {
		if _, cacheErr := s.cacheSvc.Get(psnBlockKey); cacheErr == nil {
			return nil, errors.NewScrapeFailed(string(PlatformPSN),
				"store is rate limited, skipping fetch", nil)
		}
	}

	body, err := s.fetcher.FetchHTML(ctx, url)
	if err != nil {
		var rateErr *helpers.ErrRateLimited
		if stderrors.As(err, &rateErr) && s.cacheSvc != nil {
			seconds := strconv.Itoa(int(s.blockTime / time.Second))
			s.cacheSvc.Set(psnBlockKey, []byte(seconds), s.blockTime)
			s.log.Warn().
				Str("retry_after", rateErr.RetryAfter).
				Dur("block_time", s.blockTime).
				Msg("Store rate limited, blocking fetches")
		}
		return nil, errors.NewScrapeFailed(string(PlatformPSN), "page fetch failed", err)
	}

	return body, nil
}

// extractImage tries the thumbnail selector, then the social preview tag
func (s *PSNScraper) extractImage(doc *goquery.Document) string {
	if src, ok := doc.Find(s.selectors.Image).First().Attr("src"); ok && src != "" {
		return src
	}
	if content, ok := doc.Find(s.selectors.MetaImage).First().Attr("content"); ok {
		return content
	}
	return ""
}

// extractPrice tries the primary then secondary price selector and matches
// the text against the symbol-prefixed price pattern. No match means a zero
// price in GBP.
func (s *PSNScraper) extractPrice(doc *goquery.Document) (float64, string) {
	priceText := helpers.FirstNonEmpty(
		helpers.CollapseWhitespace(doc.Find(s.selectors.PricePrimary).First().Text()),
		helpers.CollapseWhitespace(doc.Find(s.selectors.PriceSecondary).First().Text()),
	)

	m := psnPricePattern.FindStringSubmatch(priceText)
	if m == nil {
		return 0, "GBP"
	}

	currency := currencyBySymbol[m[1]]
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
	if err != nil {
		return 0, "GBP"
	}

	return amount, currency
}
