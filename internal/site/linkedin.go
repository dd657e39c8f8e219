package site

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go-offer-scraper/internal/browser"
	"go-offer-scraper/internal/offer"
)

var linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/jobs`)

// LinkedIn scrapes public linkedin.com job views. Search-result links carry
// the job id in a currentJobId query param and a pile of tracking params, so
// canonicalization rewrites them to the single-job view URL before
// navigation.
type LinkedIn struct{}

func NewLinkedIn() *LinkedIn { return &LinkedIn{} }

func (l *LinkedIn) Source() offer.Source { return offer.SourceLinkedIn }

func (l *LinkedIn) Match(rawURL string) bool { return linkedInPattern.MatchString(rawURL) }

// CanonicalURL rewrites collection/search links to the canonical
// /jobs/view/<id> form. Malformed input comes back unchanged.
func (l *LinkedIn) CanonicalURL(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		if id := parsed.Query().Get("currentJobId"); id != "" {
			return fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", id)
		}
	}

	if idx := strings.Index(rawURL, "/jobs/view/"); idx != -1 {
		rest := rawURL[idx+len("/jobs/view/"):]
		if id := strings.SplitN(strings.SplitN(rest, "?", 2)[0], "/", 2)[0]; id != "" {
			return fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", id)
		}
	}
	return rawURL
}

func (l *LinkedIn) Scrape(ctx context.Context, page browser.Page, url string) (offer.RawFields, error) {
	return run(ctx, page, url, plan{
		expandSelector:   "button[aria-label*='more'], .jobs-description__footer-button, button.show-more-less-html__button--more",
		extractionScript: linkedInExtractionScript,
	})
}

const linkedInExtractionScript = `(function() {
    var data = {};
    var bodyText = document.body.innerText;

    // --- 0. Remove login modal if present ---
    var modal = document.querySelector('.base-modal, .authwall-join-form__modal');
    if (modal) modal.remove();
    var overlay = document.querySelector('.modal-overlay');
    if (overlay) overlay.remove();
    document.body.style.overflow = 'auto';

    // --- 1. Title ---
    var titleEl = document.querySelector('.jobs-unified-top-card__job-title') ||
                  document.querySelector('h1.top-card-layout__title') ||
                  document.querySelector('h1.t-24') ||
                  document.querySelector('h1');
    data.title = titleEl && titleEl.innerText ? titleEl.innerText.trim() : '';

    // --- 2. Company ---
    var companyEl = document.querySelector('.jobs-unified-top-card__company-name a') ||
                    document.querySelector('.jobs-unified-top-card__company-name') ||
                    document.querySelector('a.topcard__org-name-link') ||
                    document.querySelector('.top-card-layout__first-subline a') ||
                    document.querySelector('.job-details-jobs-unified-top-card__company-name');

    if (companyEl) {
        data.company = companyEl.innerText.trim();
    } else {
        try {
            var jsonLd = document.querySelector('script[type="application/ld+json"]');
            if (jsonLd) {
                var schema = JSON.parse(jsonLd.innerText);
                if (schema['@type'] === 'JobPosting' && schema.hiringOrganization && schema.hiringOrganization.name) {
                    data.company = schema.hiringOrganization.name;
                }
            }
        } catch(e) {}
    }

    // --- 3. Location and Work Mode from top card ---
    var topFlavors = document.querySelectorAll('.topcard__flavor--bullet, .topcard__flavor, .top-card-layout__first-subline span');
    for (var i = 0; i < topFlavors.length; i++) {
        var txt = topFlavors[i].innerText ? topFlavors[i].innerText.trim() : '';

        // Work mode in parentheses: "Poznań, Poland (Hybrid)"
        var modeMatch = txt.match(/\(?(Remote|Hybrid|On-site|Zdalna|Hybrydowa)\)?/i);
        if (modeMatch) {
            data.workMode = modeMatch[1];
        }

        if (!data.location && txt.includes(',') && txt.length > 2) {
            data.location = txt.replace(/\s*\(?(Remote|Hybrid|On-site|Zdalna|Hybrydowa)\)?\s*/gi, '').trim();
        }
    }

    if (!data.location) {
        var locEl = document.querySelector('.jobs-unified-top-card__bullet') ||
                    document.querySelector('.topcard__flavor--bullet');
        if (locEl) {
            var locTxt = locEl.innerText ? locEl.innerText.trim() : '';
            if (locTxt.includes(',') || locTxt.toLowerCase().includes('poland') || locTxt.toLowerCase().includes('polska')) {
                data.location = locTxt.replace(/\s*\(.*\)\s*$/, '');
            }
        }
    }

    if (!data.location) {
        var subline = document.querySelector('.top-card-layout__first-subline, .topcard__flavor-row');
        if (subline) {
            var subTxt = subline.innerText || '';
            var locMatch = subTxt.match(/([A-ZÀ-Ž][a-zà-ž]+(?:,\s*[A-ZÀ-Ž][a-zà-ž]+)+)/);
            if (locMatch) {
                data.location = locMatch[1];
            }
        }
    }

    if (!data.workMode) {
        var workModeEl = document.querySelector('.jobs-unified-top-card__workplace-type');
        if (workModeEl) {
            data.workMode = workModeEl.innerText.trim();
        } else {
            if (bodyText.includes('Remote') || bodyText.includes('Zdalna')) data.workMode = 'Remote';
            else if (bodyText.includes('Hybrid') || bodyText.includes('Hybrydowa')) data.workMode = 'Hybrid';
        }
    }

    // --- 4. Seniority / Employment from job criteria ---
    var criteriaItems = document.querySelectorAll('.description__job-criteria-item');
    criteriaItems.forEach(function(item) {
        var subtitleEl = item.querySelector('.description__job-criteria-subtitle');
        var textEl = item.querySelector('.description__job-criteria-text');
        var subtitle = subtitleEl && subtitleEl.innerText ? subtitleEl.innerText.toLowerCase() : '';
        var text = textEl && textEl.innerText ? textEl.innerText.trim() : '';
        if (text) {
            if (subtitle.includes('seniority') || subtitle.includes('poziom')) {
                data.experienceLevel = text;
            }
            if (subtitle.includes('employment') || subtitle.includes('zatrudnienia')) {
                data.employmentType = text;
            }
        }
    });

    // Fallback from job insights
    if (!data.experienceLevel || !data.employmentType) {
        var insights = document.querySelectorAll('.jobs-unified-top-card__job-insight, li');
        for (var j = 0; j < insights.length; j++) {
            var insight = insights[j].innerText ? insights[j].innerText.toLowerCase() : '';
            if (!data.employmentType) {
                if (insight.includes('full-time') || insight.includes('pełny etat')) {
                    data.employmentType = 'Full-time';
                } else if (insight.includes('part-time')) {
                    data.employmentType = 'Part-time';
                } else if (insight.includes('contract')) {
                    data.employmentType = 'Contract';
                }
            }
            if (!data.experienceLevel) {
                if (insight.includes('entry level') || insight.includes('junior')) {
                    data.experienceLevel = 'Entry level';
                } else if (insight.includes('mid-senior') || insight.includes('mid')) {
                    data.experienceLevel = 'Mid-Senior level';
                } else if (insight.includes('associate')) {
                    data.experienceLevel = 'Associate';
                } else if (insight.includes('senior')) {
                    data.experienceLevel = 'Senior';
                }
            }
        }
    }

    // --- 5. Description ---
    var descContainer = document.querySelector('.jobs-description__content') ||
                        document.querySelector('.jobs-box__html-content') ||
                        document.querySelector('.description__text') ||
                        document.querySelector('.show-more-less-html__markup');

    if (descContainer) {
        var d = descContainer.innerText ? descContainer.innerText.trim() : '';
        d = d.replace(/\n\s*Show less\s*$/i, '').trim();
        data.description = d;
    } else {
        var startMarker = 'Full Job Description';
        var idx = bodyText.indexOf(startMarker);
        if (idx > -1) {
            var cut = bodyText.substring(idx + startMarker.length);
            var endMarkers = ['Show less', 'Seniority level', 'Employment type', 'Job function', 'Industries'];
            for (var k = 0; k < endMarkers.length; k++) {
                if (cut.indexOf(endMarkers[k]) > -1) {
                    cut = cut.split(endMarkers[k])[0];
                    break;
                }
            }
            data.description = cut.trim();
        }
    }

    return data;
})();`
