package rightmove

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/sambezza/hullpropertyanalysis/config"
	"github.com/sambezza/hullpropertyanalysis/models"
	"github.com/sambezza/hullpropertyanalysis/utils"
)

// BrowserFetcher drives a headless Chrome to render the listing page
// before extraction, for when the static HTML does not carry the details.
type BrowserFetcher struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// NewBrowserFetcher creates a ready-to-use BrowserFetcher.
func NewBrowserFetcher(cfg *config.Config, logger *utils.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		cfg:    cfg,
		logger: logger,
		retry:  newRetry(cfg, logger),
	}
}

// pageDetails is the shape returned by the in-page extraction script.
type pageDetails struct {
	Price   string `json:"price"`
	Address string `json:"address"`
	Type    string `json:"type"`
}

// Fetch renders the listing page at url and extracts its details.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*models.Listing, error) {
	chromeBin := findChromeBinary(f.cfg.ChromeBin)
	f.logger.Info("[rightmove] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	allocCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	var details pageDetails
	err := f.retry.Do(ctx, "fetch-listing", func() error {
		tabCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
		defer cancelTimeout()

		var raw string
		err := chromedp.Run(tabCtx,
			chromedp.Navigate(url),
			chromedp.Sleep(3*time.Second),
			chromedp.Evaluate(fmt.Sprintf(`
				(function() {
					var pick = function(sel) {
						var el = document.querySelector(sel);
						return el ? el.textContent.trim() : "";
					};
					return JSON.stringify({
						price:   pick(%q),
						address: pick(%q),
						type:    pick(%q)
					});
				})()
			`, priceSelector, addressSelector, typeSelector), &raw),
		)
		if err != nil {
			return fmt.Errorf("rightmove: render %q: %w", url, err)
		}
		if err := json.Unmarshal([]byte(raw), &details); err != nil {
			return fmt.Errorf("rightmove: decode page details: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	listing := buildListing(url, details.Price, details.Address, details.Type)
	f.logger.Info("[rightmove] Fetched %s — price=%q street=%q type=%q",
		url, listing.RawPrice, listing.Street, listing.Type)
	return listing, nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
