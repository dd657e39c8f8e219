// Package engine is the single entry point: it classifies a URL, drives the
// matching site adapter inside a governed browser session, and converts every
// outcome, including panics, into a well-formed JobOffer.

package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"go-offer-scraper/internal/browser"
	"go-offer-scraper/internal/governor"
	"go-offer-scraper/internal/offer"
	"go-offer-scraper/internal/site"
)

// Engine orchestrates scrapes. It owns no per-request state; every call runs
// its own lifecycle end to end.
type Engine struct {
	factory  browser.Factory
	gov      *governor.Governor
	adapters []site.Adapter
}

func New(factory browser.Factory, gov *governor.Governor) *Engine {
	return &Engine{
		factory:  factory,
		gov:      gov,
		adapters: site.Adapters(),
	}
}

// ConcurrencyLimit reports the current browser-session bound.
func (e *Engine) ConcurrencyLimit() int { return e.gov.Limit() }

// SetConcurrencyLimit adjusts the browser-session bound at runtime. Fails
// with governor.ErrInvalidLimit for values below 1.
func (e *Engine) SetConcurrencyLimit(n int) error { return e.gov.SetLimit(n) }

// ScrapeOffer scrapes a single job offer URL. It never returns an error and
// never panics: every failure mode is encoded in the returned JobOffer.
func (e *Engine) ScrapeOffer(ctx context.Context, rawURL string) (result offer.JobOffer) {
	initialURL := rawURL

	// Validation and classification run before any permit is taken, so bad
	// input never competes for the bounded resource.
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return offer.NewError("", initialURL, "Invalid URL: URL must be a non-empty string")
	}

	adapter := e.adapterFor(url)
	if adapter == nil {
		return offer.NewError(url, initialURL, fmt.Sprintf(
			"Unsupported URL: No scraper available for '%s'. Supported sites: %s",
			url, site.SupportedSites))
	}

	url = adapter.CanonicalURL(url)

	defer func() {
		if r := recover(); r != nil {
			result = offer.NewError(url, initialURL, fmt.Sprintf(
				"Scraping failed: %v\n\nTrace:\n%s", r, debug.Stack()))
		}
	}()

	release, err := e.gov.Acquire(ctx)
	if err != nil {
		return offer.NewError(url, initialURL, fmt.Sprintf("Scraping failed: %v", err))
	}
	defer release()

	page, err := e.factory.Open(ctx)
	if err != nil {
		return offer.NewError(url, initialURL, fmt.Sprintf(
			"Browser initialization failed: %v", err))
	}
	defer page.Close()

	fields, err := adapter.Scrape(ctx, page, url)
	if err != nil {
		if errors.Is(err, browser.ErrNavigationTimeout) {
			return offer.NewError(url, initialURL, fmt.Sprintf(
				"Timeout: Page took longer than %ds to load", int(site.PageLoadTimeout.Seconds())))
		}
		return offer.NewError(url, initialURL, fmt.Sprintf("Scraping failed: %v", err))
	}

	return offer.NewSuccess(fields, adapter.Source(), url, initialURL)
}

// ScrapeBatch scrapes every URL concurrently and returns results in input
// order. Individual failures never abort the batch; the governor serializes
// actual browser creation beyond its limit.
func (e *Engine) ScrapeBatch(ctx context.Context, urls []string) []offer.JobOffer {
	results := make([]offer.JobOffer, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = e.ScrapeOffer(ctx, url)
		}(i, url)
	}
	wg.Wait()
	return results
}

// adapterFor classifies a URL: first matching adapter in priority order wins.
func (e *Engine) adapterFor(url string) site.Adapter {
	for _, a := range e.adapters {
		if a.Match(url) {
			return a
		}
	}
	return nil
}
