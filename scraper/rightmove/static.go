package rightmove

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

// StaticFetcher retrieves the listing page with a plain HTTP GET and
// extracts details from the served HTML.
type StaticFetcher struct {
	client *http.Client
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// NewStaticFetcher creates a ready-to-use StaticFetcher.
func NewStaticFetcher(cfg *config.Config, logger *utils.Logger) *StaticFetcher {
	return &StaticFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
		retry:  newRetry(cfg, logger),
	}
}

// Fetch downloads and parses the listing page at url.
func (f *StaticFetcher) Fetch(ctx context.Context, url string) (*models.Listing, error) {
	var listing *models.Listing

	err := f.retry.Do(ctx, "fetch-listing", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("rightmove: build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("rightmove: get %q: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("rightmove: get %q: status %d", url, resp.StatusCode)
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return fmt.Errorf("rightmove: parse %q: %w", url, err)
		}

		listing = f.extract(url, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("[rightmove] Fetched %s — price=%q street=%q type=%q",
		url, listing.RawPrice, listing.Street, listing.Type)
	return listing, nil
}

func (f *StaticFetcher) extract(url string, doc *goquery.Document) *models.Listing {
	priceText := strings.TrimSpace(doc.Find(priceSelector).First().Text())
	addressText := strings.TrimSpace(doc.Find(addressSelector).First().Text())
	typeText := strings.TrimSpace(doc.Find(typeSelector).First().Text())

	if priceText == "" {
		f.logger.Warn("[rightmove] No price element on %s — page may need browser rendering (FETCH_MODE=browser)", url)
	}
	return buildListing(url, priceText, addressText, typeText)
}
