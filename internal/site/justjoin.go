package site

import (
	"context"
	"regexp"
	"strings"

	"go-offer-scraper/internal/browser"
	"go-offer-scraper/internal/offer"
	"go-offer-scraper/internal/textutil"
)

var justJoinPattern = regexp.MustCompile(`(?i)justjoin\.it`)

// JustJoin scrapes justjoin.it single-offer pages. The board renders as a MUI
// app, so extraction leans on icon testids and chip text rather than stable
// classes.
type JustJoin struct{}

func NewJustJoin() *JustJoin { return &JustJoin{} }

func (j *JustJoin) Source() offer.Source { return offer.SourceJustJoin }

func (j *JustJoin) Match(url string) bool { return justJoinPattern.MatchString(url) }

func (j *JustJoin) CanonicalURL(url string) string { return url }

func (j *JustJoin) Scrape(ctx context.Context, page browser.Page, url string) (offer.RawFields, error) {
	fields, err := run(ctx, page, url, plan{
		consentSelector:  "button:has-text('Accept'), button:has-text('Akceptuj')",
		extractionScript: justJoinExtractionScript,
	})
	if err != nil {
		return offer.RawFields{}, err
	}

	// Last-resort strategies the DOM cascade could not cover.
	if fields.Salary == "" && fields.Description != "" {
		fields.Salary = textutil.ExtractSalary(fields.Description)
	}
	if fields.ExperienceLevel == "" {
		fields.ExperienceLevel = levelFromTitle(fields.Title)
	}
	return fields, nil
}

func levelFromTitle(title string) string {
	folded := textutil.Fold(title)
	for _, lvl := range []string{"junior", "senior", "mid"} {
		if strings.Contains(folded, lvl) {
			return strings.ToUpper(lvl[:1]) + lvl[1:]
		}
	}
	return ""
}

const justJoinExtractionScript = `(function() {
    var data = {};

    // --- Helper: Find text by icon ---
    function getTextByIcon(iconId) {
        var icon = document.querySelector('svg[data-testid="' + iconId + '"]');
        if (icon) {
            var parent = icon.parentElement;
            if (parent) return parent.innerText.trim();
        }
        return null;
    }

    // --- Title ---
    var h1 = document.querySelector('h1');
    data.title = h1 ? h1.innerText.trim() : '';

    // --- Company ---
    var company = getTextByIcon('ApartmentRoundedIcon');
    if (!company) {
        var compLink = document.querySelector('a[href*="companies="]');
        if (compLink) company = compLink.innerText.trim();
    }
    data.company = company || '';

    // --- Salary ---
    var salaryMatch = document.body.innerText.match(/(\d[\d\s]*-(?:\s*\d[\d\s]*)?)\s*(PLN|EUR|USD)/i);
    if (salaryMatch) {
         data.salary = salaryMatch[0].trim();
    }

    // --- Location ---
    // Try ld+json structured data first (most reliable)
    var location = null;
    var ldJsonScript = document.querySelector('script[type="application/ld+json"]');
    if (ldJsonScript) {
        try {
            var ldJson = JSON.parse(ldJsonScript.textContent);
            if (ldJson.jobLocation && ldJson.jobLocation.address) {
                var addr = ldJson.jobLocation.address;
                var parts = [];
                if (addr.streetAddress) parts.push(addr.streetAddress);
                if (addr.addressLocality) parts.push(addr.addressLocality);
                if (parts.length > 0) location = parts.join(', ');
            }
        } catch(e) {}
    }

    // Fallback: sibling of the company icon container
    if (!location) {
        var companyIcon = document.querySelector('svg[data-testid="ApartmentRoundedIcon"]');
        if (companyIcon) {
            var companyContainer = companyIcon.closest('a, div[class*="MuiStack"]');
            if (companyContainer && companyContainer.parentElement) {
                var siblings = companyContainer.parentElement.children;
                for (var i = 0; i < siblings.length; i++) {
                    var sib = siblings[i];
                    if (sib.tagName === 'A' || sib.tagName === 'SPAN') continue;
                    var sibText = sib.innerText.trim();
                    if (sibText && sibText.length > 2 && sibText.length < 100) {
                        location = sibText;
                        break;
                    }
                }
            }
        }
    }

    // Last fallback: old icon selectors
    if (!location) {
        location = getTextByIcon('LocationOnOutlinedIcon') || getTextByIcon('PlaceIcon');
    }
    data.location = location;

    // --- Metadata Chips (Seniority, Mode, Type) ---
    var allDivs = document.querySelectorAll('div, span');
    var headerChips = [];
    var modeChips = [];
    var typeChips = [];

    for (var i = 0; i < allDivs.length; i++) {
        var el = allDivs[i];
        var txt = el.innerText;
        if (txt.length > 20) continue;

        if (['Junior', 'Mid', 'Senior', 'C-level'].indexOf(txt) !== -1) headerChips.push(txt);
        if (['Remote', 'Hybrid', 'Office'].indexOf(txt) !== -1) modeChips.push(txt);
        if (['B2B', 'Permanent', 'Mandate contract'].indexOf(txt) !== -1) typeChips.push(txt);
    }

    if (headerChips.length > 0) data.experienceLevel = headerChips[0];
    if (modeChips.length > 0) data.workMode = modeChips[0];
    if (typeChips.length > 0) data.employmentType = typeChips[0];

    // --- Description & Tech Stack ---
    function getSectionContent(headerText) {
        var headers = document.querySelectorAll('h1, h2, h3, h4, h5, h6, div');
        for (var i = 0; i < headers.length; i++) {
            var h = headers[i];
            if (h.innerText.trim().toUpperCase() === headerText) {
                var next = h.nextElementSibling;
                if (next) return next.innerText.trim();
            }
        }
        return null;
    }

    var desc = getSectionContent('JOB DESCRIPTION') || '';

    var techHeaderStub = null;
    var headers = document.querySelectorAll('h1, h2, h3, h4, h5, h6, div');
    for (var i = 0; i < headers.length; i++) {
         if (headers[i].innerText.trim().toUpperCase() === 'TECH STACK') {
             techHeaderStub = headers[i];
             break;
         }
    }

    var techText = "";
    if (techHeaderStub) {
        var container = techHeaderStub.nextElementSibling;
        if (container) {
            var rawStack = container.innerText.trim();
            var parts = rawStack.split('\n');
            var filtered = [];
            for (var j = 0; j < parts.length; j++) {
                var p = parts[j];
                if (p.length > 1 && ['Junior', 'Mid', 'Senior'].indexOf(p) === -1) {
                    filtered.push(p);
                }
            }
            if (filtered.length > 0) {
                techText = "Tech Stack: " + filtered.join(', ');
            }
        }
    }

    if (desc && techText) {
        desc = desc + "\n\n" + techText;
    } else if (techText) {
        desc = techText;
    }

    data.description = desc;

    return data;
})();`
