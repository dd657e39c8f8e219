// Package site holds one adapter per supported job board. Adapters share a
// single preparation-and-extraction lifecycle and differ only in their URL
// pattern, consent/expansion triggers, and extraction script.

package site

import (
	"context"
	"strings"
	"time"

	"go-offer-scraper/internal/browser"
	"go-offer-scraper/internal/offer"
)

// PageLoadTimeout is the single navigation budget. A load that exceeds it is
// terminal for that URL; there is no retry.
const PageLoadTimeout = 30 * time.Second

// Settle pacing after navigation and between preparation steps. Client-side
// rendering on these boards has no reliable completion signal, so the pauses
// are heuristic.
const (
	settleAfterLoad = 2 * time.Second
	settleShort     = time.Second
)

// Adapter scrapes one job board. Match and CanonicalURL are pure; Scrape
// drives a live page through the full lifecycle and never panics past its
// boundary.
type Adapter interface {
	Source() offer.Source
	Match(url string) bool
	CanonicalURL(url string) string
	Scrape(ctx context.Context, page browser.Page, url string) (offer.RawFields, error)
}

// Adapters returns the full adapter set in classification priority order.
func Adapters() []Adapter {
	return []Adapter{
		NewJustJoin(),
		NewTheProtocol(),
		NewPracuj(),
		NewLinkedIn(),
	}
}

// SupportedSites is the display list embedded in unsupported-URL errors.
const SupportedSites = "JustJoin.it, TheProtocol.it, Pracuj.pl, LinkedIn"

// plan describes the site-specific parts of the lifecycle. Empty fields skip
// their step.
type plan struct {
	consentSelector  string // best-effort cookie banner dismissal
	expandSelector   string // click-based "show more" trigger
	expandScript     string // script-based "show more" trigger
	scrollBeforeRead bool
	extractionScript string
}

const titleFallbackScript = `(function() {
    var h = document.querySelector('h1');
    return h ? h.innerText.trim() : '';
})();`

// run executes the uniform lifecycle. Preparation steps are independently
// fault tolerant: a missing consent banner or a failing expansion must not
// abort extraction. Only a failed navigation is an error; a failed extraction
// script degrades to an h1-only result.
func run(ctx context.Context, page browser.Page, url string, p plan) (offer.RawFields, error) {
	if err := ctx.Err(); err != nil {
		return offer.RawFields{}, err
	}

	if err := page.Navigate(url, PageLoadTimeout); err != nil {
		return offer.RawFields{}, err
	}
	page.Settle(settleAfterLoad)

	if p.consentSelector != "" {
		if page.ClickIfVisible(p.consentSelector) {
			page.Settle(settleShort)
		}
	}

	if p.expandScript != "" {
		if _, err := page.Evaluate(p.expandScript); err == nil {
			page.Settle(settleShort)
		}
	}
	if p.expandSelector != "" {
		if page.ClickIfVisible(p.expandSelector) {
			page.Settle(settleShort)
		}
	}

	if p.scrollBeforeRead {
		page.ScrollToBottom()
	}

	value, err := page.Evaluate(p.extractionScript)
	if err == nil {
		if fields, ok := fieldsFrom(value); ok {
			return fields, nil
		}
	}

	// Degraded path: the page loaded but structured extraction failed. Keep
	// whatever the top-level heading says and leave the rest empty.
	fields := offer.RawFields{}
	if v, err := page.Evaluate(titleFallbackScript); err == nil {
		if s, ok := v.(string); ok {
			fields.Title = strings.TrimSpace(s)
		}
	}
	return fields, nil
}

// fieldsFrom decodes an extraction-script result. Anything other than an
// object is rejected so the caller can fall back.
func fieldsFrom(value any) (offer.RawFields, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return offer.RawFields{}, false
	}
	str := func(key string) string {
		s, _ := m[key].(string)
		return strings.TrimSpace(s)
	}
	return offer.RawFields{
		Title:           str("title"),
		Company:         str("company"),
		Salary:          str("salary"),
		Location:        str("location"),
		ExperienceLevel: str("experienceLevel"),
		EmploymentType:  str("employmentType"),
		WorkMode:        str("workMode"),
		Description:     str("description"),
	}, true
}
