package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vehiclecatalog/internal/browser"
	"vehiclecatalog/internal/models"
)

// Selectors for the ZigWheels markup
const (
	brandListSelector     = "#manufacturers"
	brandSelectSelector   = "#byBrandMake"
	modelSelectSelector   = "#byBrandModel"
	variantWidgetSelector = `a[data-track-label="variant-widget"]`
	descriptionSelector   = "div.fnt-14.read-more.mx-ht-pg-desc.rm p"
	exShowroomSelector    = "ul.pl-15.pr-15.fnt-14.simple-list li > span"
	specGroupSelector     = `div[class="spec-t-ctr"]`
	specCellSelector      = "td"
)

// Options tunes waits and pacing of a Scraper
type Options struct {
	WaitTimeout   time.Duration // bounded wait for DOM elements
	SelectPause   time.Duration // reaction time after choosing a brand
	RetryAttempts int           // attempts per brand in the model stage
	RetryDelay    time.Duration // pause between those attempts
	NavRatePerSec float64       // navigations per second, <= 0 for unlimited
}

// DefaultOptions returns the pacing used against the live site
func DefaultOptions() Options {
	return Options{
		WaitTimeout:   browser.DefaultWaitTimeout,
		SelectPause:   time.Second,
		RetryAttempts: 5,
		RetryDelay:    2 * time.Second,
		NavRatePerSec: 1,
	}
}

// Scraper drives one browser page through the three collection stages
type Scraper struct {
	page    browser.Page
	opts    Options
	limiter *rate.Limiter
	retry   *RetryConfig
}

// New wraps page. Zero-valued options fall back to DefaultOptions.
func New(page browser.Page, opts Options) *Scraper {
	defaults := DefaultOptions()
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = defaults.WaitTimeout
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = defaults.RetryAttempts
	}

	limit := rate.Inf
	if opts.NavRatePerSec > 0 {
		limit = rate.Limit(opts.NavRatePerSec)
	}

	return &Scraper{
		page:    page,
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
		retry: &RetryConfig{
			MaxAttempts: opts.RetryAttempts,
			Delay:       opts.RetryDelay,
		},
	}
}

// navigate paces and performs one page load
func (s *Scraper) navigate(ctx context.Context, url string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.page.Navigate(url)
}

// ListingURL returns the category's listing page, e.g. https://www.zigwheels.com/newcars
func ListingURL(baseURL string, category models.VehicleType) string {
	return fmt.Sprintf("%s/new%ss", strings.TrimRight(baseURL, "/"), category)
}

// NormalizeModelLink rewrites scooter model URLs, which the site only serves under -bikes
func NormalizeModelLink(link string) string {
	return strings.ReplaceAll(link, "-scooters", "-bikes")
}

// CleanVariantName strips the brand and model out of a variant widget's label
func CleanVariantName(label, brand, model string) string {
	name := strings.ToLower(label)
	name = strings.ReplaceAll(name, brand, "")
	name = strings.ReplaceAll(name, model, "")
	return strings.TrimSpace(name)
}

// CleanSpecValue drops the collapsed-text marker from a spec table value
func CleanSpecValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "\n...Read More", "")
	value = strings.TrimSuffix(value, "...Read More")
	return strings.TrimSpace(value)
}

// firstLine returns the text up to the first newline, trimmed
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// errorLine keeps log lines short: browser errors often carry multi-line detail
func errorLine(err error) string {
	return firstLine(err.Error())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
