package site

import (
	"context"
	"regexp"

	"go-offer-scraper/internal/browser"
	"go-offer-scraper/internal/offer"
)

var theProtocolPattern = regexp.MustCompile(`(?i)theprotocol\.it`)

// TheProtocol scrapes theprotocol.it offer pages. The board exposes stable
// data-test attributes, so this is the most selector-driven adapter.
type TheProtocol struct{}

func NewTheProtocol() *TheProtocol { return &TheProtocol{} }

func (t *TheProtocol) Source() offer.Source { return offer.SourceTheProtocol }

func (t *TheProtocol) Match(url string) bool { return theProtocolPattern.MatchString(url) }

func (t *TheProtocol) CanonicalURL(url string) string { return url }

func (t *TheProtocol) Scrape(ctx context.Context, page browser.Page, url string) (offer.RawFields, error) {
	return run(ctx, page, url, plan{
		consentSelector:  "#onetrust-accept-btn-handler, button[id*='accept']",
		expandScript:     theProtocolExpandScript,
		extractionScript: theProtocolExtractionScript,
	})
}

const theProtocolExpandScript = `(function() {
    var btns = document.querySelectorAll('button[data-test="button-toggle"], button');
    btns.forEach(function(b) {
        var label = b.innerText.toLowerCase();
        if (label.includes('więcej') || label.includes('more')) {
            b.click();
        }
    });
})();`

const theProtocolExtractionScript = `(function() {
    var data = {};

    function getTestText(testId) {
        var el = document.querySelector('[data-test="' + testId + '"]');
        return el ? el.innerText.trim() : null;
    }

    // --- 1. Basic Metadata ---
    var h1 = document.querySelector('h1');
    data.title = getTestText('text-offerTitle') || (h1 ? h1.innerText.trim() : '');

    // Company (remove "Firma: " prefix if present)
    var company = getTestText('text-offerEmployer');
    if (!company) {
        var companyLink = document.querySelector('a[data-test="anchor-company-link"]');
        if (companyLink) company = companyLink.innerText.trim();
    }
    if (company) {
        company = company.replace(/^(Firma|Company):\s*/i, '');
    }
    data.company = company || '';

    // Salary
    data.salary = getTestText('text-salary-value');

    // --- 2. Details Metadata ---
    data.location = getTestText('text-primaryLocation');

    var modeEl = document.querySelector('[data-test="content-workModes"]');
    if (modeEl) {
        data.workMode = modeEl.innerText.replace(/\n/g, ', ').trim();
    }

    var expEl = document.querySelector('[data-test="content-positionLevels"]');
    if (expEl) {
        data.experienceLevel = expEl.innerText.replace(/\n/g, ', ').trim();
    }

    var typeEl = document.querySelector('[data-test="text-contractName"]');
    if (typeEl) {
       data.employmentType = typeEl.innerText.trim();
    }

    // --- 3. Structured Description ---
    var sections = [
        'section-technologies',
        'section-about-project',
        'section-responsibilities',
        'section-requirements',
        'section-offered',
        'section-benefits',
        'section-training-space',
        'section-about-us-description'
    ];

    var descParts = [];
    sections.forEach(function(id) {
        var el = document.querySelector('[data-test="' + id + '"]');
        if (el && el.innerText.trim().length > 0) {
            descParts.push(el.innerText.trim());
        }
    });

    data.description = descParts.length > 0 ? descParts.join('\n\n') : '';

    return data;
})();`
