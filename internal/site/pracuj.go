package site

import (
	"context"
	"regexp"

	"go-offer-scraper/internal/browser"
	"go-offer-scraper/internal/offer"
)

var pracujPattern = regexp.MustCompile(`(?i)pracuj\.pl`)

// Pracuj scrapes pracuj.pl offer pages. Pracuj redesigned its offer layout
// into badge sections; the cascade tries those first and keeps the legacy
// text-* selectors as fallbacks.
type Pracuj struct{}

func NewPracuj() *Pracuj { return &Pracuj{} }

func (p *Pracuj) Source() offer.Source { return offer.SourcePracuj }

func (p *Pracuj) Match(url string) bool { return pracujPattern.MatchString(url) }

func (p *Pracuj) CanonicalURL(url string) string { return url }

func (p *Pracuj) Scrape(ctx context.Context, page browser.Page, url string) (offer.RawFields, error) {
	return run(ctx, page, url, plan{
		consentSelector:  "button[data-test='button-submitCookie'], #onetrust-accept-btn-handler",
		scrollBeforeRead: true,
		extractionScript: pracujExtractionScript,
	})
}

const pracujExtractionScript = `(function() {
    var data = {};

    function getTestText(testId) {
        var el = document.querySelector('[data-test="' + testId + '"]');
        return el ? el.innerText.trim() : null;
    }

    // Badge title inside a sections-benefit element
    function getBadgeTitle(sectionTestId) {
        var section = document.querySelector('[data-test="' + sectionTestId + '"]');
        if (section) {
            var titleEl = section.querySelector('[data-test="offer-badge-title"]');
            return titleEl ? titleEl.innerText.trim() : null;
        }
        return null;
    }

    // --- Title ---
    var h1 = document.querySelector('h1');
    data.title = getTestText('text-positionName') || (h1 ? h1.innerText.trim() : '');

    // --- Company (strip "O firmie" / "About the company" suffix) ---
    var company = getTestText('text-employerName');
    if (!company) {
        var profileLink = document.querySelector('[data-test="anchor-company-profile"]');
        if (profileLink) company = profileLink.innerText.trim();
    }
    if (company) {
        company = company.replace(/O firmie$/i, '').replace(/About the company$/i, '').trim();
    }
    data.company = company || '';

    // --- Salary (per contract type) ---
    var salarySection = document.querySelector('[data-test="section-salary"]');
    if (salarySection) {
        var earningAmounts = salarySection.querySelectorAll('[data-test="text-earningAmount"]');
        if (earningAmounts.length > 0) {
            var salaries = [];
            earningAmounts.forEach(function(el) {
                var amount = el.innerText.trim();
                var parent = el.closest('[data-test="section-salaryPerContractType"]');
                if (parent) {
                    var contractType = parent.querySelector('[data-test="text-contractTypeName"]');
                    if (contractType) {
                        salaries.push(amount + ' ' + contractType.innerText.trim());
                    } else {
                        salaries.push(amount);
                    }
                } else {
                    salaries.push(amount);
                }
            });
            data.salary = salaries.join('; ');
        }
    }
    if (!data.salary) {
        data.salary = getTestText('text-salary');
    }

    // --- Location ---
    data.location = getBadgeTitle('sections-benefit-workplaces');
    if (!data.location) {
        var streetEl = document.querySelector('[data-test="text-address-street"]');
        var addressEl = document.querySelector('[data-test="text-address"]');
        if (streetEl && addressEl) {
            data.location = streetEl.innerText.trim() + ', ' + addressEl.innerText.trim();
        } else if (addressEl) {
            data.location = addressEl.innerText.trim();
        } else if (streetEl) {
            data.location = streetEl.innerText.trim();
        }
    }
    if (data.location) {
        // strip region suffix such as "(Masovian)"
        data.location = data.location.replace(/\s*\([^)]*\)\s*$/, '').trim();
    }

    // --- Employment Type / Contract ---
    data.employmentType = getBadgeTitle('sections-benefit-contracts');

    var workSchedule = getBadgeTitle('sections-benefit-work-schedule');
    if (workSchedule) {
        data.employmentType = data.employmentType
            ? data.employmentType + ', ' + workSchedule
            : workSchedule;
    }

    // --- Experience Level ---
    data.experienceLevel = getBadgeTitle('sections-benefit-employment-type-name');

    // --- Work Mode (attribute has suffixes: -hybrid, -remote, -many, ...) ---
    var workModeEl = document.querySelector('[data-test^="sections-benefit-work-modes"]');
    if (workModeEl) {
        var titleEl = workModeEl.querySelector('[data-test="offer-badge-title"]');
        if (titleEl) {
            data.workMode = titleEl.innerText.trim();
        }
    }

    // --- Legacy selector fallbacks ---
    if (!data.location) {
        data.location = getTestText('text-workplaceAddress');
    }
    if (!data.workMode) {
        var modeEl = document.querySelector('[data-test="text-workModes"]');
        if (modeEl) data.workMode = modeEl.innerText.trim();
    }
    if (!data.experienceLevel) {
        var expEl = document.querySelector('[data-test="text-experienceLevel"]');
        if (expEl) data.experienceLevel = expEl.innerText.trim();
    }
    if (!data.employmentType) {
        var typeEl = document.querySelector('[data-test="text-contractType"]');
        if (typeEl) data.employmentType = typeEl.innerText.trim();
    }

    // --- Description sections ---
    var descSections = [
        'section-about-project',
        'section-responsibilities',
        'section-requirements',
        'section-offered',
        'section-benefits',
        'section-technologies',
        'section-about-us',
        'section-description'
    ];

    var descParts = [];
    descSections.forEach(function(sectionId) {
        var sec = document.querySelector('[data-test="' + sectionId + '"]');
        if (sec && sec.innerText && sec.innerText.trim().length > 10) {
            descParts.push(sec.innerText.trim());
        }
    });

    if (descParts.length === 0) {
        var genericSections = document.querySelectorAll('[data-test*="section-"]');
        genericSections.forEach(function(sec) {
            var text = sec.innerText ? sec.innerText.trim() : '';
            if (text.length > 20 && descParts.indexOf(text) === -1) {
                descParts.push(text);
            }
        });
    }

    if (descParts.length > 0) {
        data.description = descParts.join('\n\n');
    } else {
        var mainContent = document.querySelector('[data-scroll-id]') ||
                          document.querySelector('main') ||
                          document.querySelector('[role="main"]');
        data.description = mainContent && mainContent.innerText ? mainContent.innerText.trim() : '';
    }

    return data;
})();`
