package rightmove

import (
	"context"
	"strings"
	"time"

	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/services"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

const (
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Rightmove's obfuscated class names; brittle, kept in one place.
	priceSelector   = "._1gfnqJ3Vtd1z40MlC0MzXu"
	addressSelector = "._2uQQ3SV0eMHL1P6t5ZDo2q"
	typeSelector    = "article dl > div:first-of-type dd span p"
)

// Fetcher retrieves a single listing page and extracts its details. The
// rest of the pipeline depends only on this interface, never on page
// markup.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*models.Listing, error)
}

// New returns the fetcher for the configured mode: "browser" drives a
// headless Chrome for JS-rendered pages, anything else does a plain HTTP
// GET and parses the static HTML.
func New(cfg *config.Config, logger *utils.Logger) Fetcher {
	if cfg.FetchMode == "browser" {
		return NewBrowserFetcher(cfg, logger)
	}
	return NewStaticFetcher(cfg, logger)
}

// buildListing assembles a Listing from the three raw page texts. Any of
// them may be empty; the corresponding field stays absent.
func buildListing(url, priceText, addressText, typeText string) *models.Listing {
	listing := &models.Listing{URL: url, ScrapedAt: time.Now()}

	if token := services.ExtractPrice(priceText); token != "" {
		listing.RawPrice = token
		listing.Price = services.ParsePrice(token)
	}

	if addressText = strings.TrimSpace(addressText); addressText != "" {
		parts := strings.Split(addressText, ",")
		if len(parts) >= 2 {
			listing.Street = strings.TrimSpace(parts[0])
			listing.Postcode = strings.TrimSpace(parts[len(parts)-1])
		} else {
			listing.Street = addressText
		}
	}

	if strings.TrimSpace(typeText) != "" {
		listing.Type = models.PropertyTypeFromRaw(typeText)
	}

	return listing
}

func newRetry(cfg *config.Config, logger *utils.Logger) *utils.RetryConfig {
	return &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
}
