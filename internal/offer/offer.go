// Canonical result schema shared by all site adapters.
// Every scrape, no matter which site or how it failed, ends as a JobOffer.

package offer

import (
	"encoding/json"
	"time"

	"go-offer-scraper/internal/textutil"
)

// Source identifies a supported job board.
type Source string

const (
	SourceJustJoin    Source = "justjoin"
	SourceTheProtocol Source = "theprotocol"
	SourcePracuj      Source = "pracuj"
	SourceLinkedIn    Source = "linkedin"
	SourceUnknown     Source = "unknown"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Sentinels applied when a page loaded but the required-for-display fields
// could not be extracted. Callers treat these as a degraded success.
const (
	UnknownTitle   = "Unknown Title"
	UnknownCompany = "Unknown Company"
)

// RawFields is the unnormalized extraction output of a site adapter.
// Any field may be empty; defaults and null-coercion happen in NewSuccess.
type RawFields struct {
	Title           string
	Company         string
	Salary          string
	Location        string
	ExperienceLevel string
	EmploymentType  string
	WorkMode        string
	Description     string
}

// JobOffer is the single output shape for every scrape attempt.
// Optional fields are nil (JSON null) when the site genuinely omits them,
// never empty strings. Immutable once constructed.
type JobOffer struct {
	Status     string `json:"status"`
	InitialURL string `json:"initial_url"`
	URL        string `json:"url"`

	Source  Source `json:"source,omitempty"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`

	Location        *string `json:"location"`
	Salary          *string `json:"salary"`
	ExperienceLevel *string `json:"experience_level"`
	EmploymentType  *string `json:"employment_type"`
	WorkMode        *string `json:"work_mode"`

	Description string `json:"description"`

	ErrorDescription string `json:"error_description,omitempty"`

	ScrapedAt time.Time `json:"scraped_at"`
}

// NewSuccess normalizes raw adapter output into the success shape.
// Single-line fields get whitespace collapsed; title and company fall back to
// sentinels so downstream consumers always have something to display.
func NewSuccess(raw RawFields, source Source, url, initialURL string) JobOffer {
	return JobOffer{
		Status:          StatusSuccess,
		InitialURL:      initialURL,
		URL:             url,
		Source:          source,
		Title:           orDefault(textutil.Clean(raw.Title), UnknownTitle),
		Company:         orDefault(textutil.Clean(raw.Company), UnknownCompany),
		Location:        nullable(textutil.Clean(raw.Location)),
		Salary:          nullable(textutil.Clean(raw.Salary)),
		ExperienceLevel: nullable(textutil.Clean(raw.ExperienceLevel)),
		EmploymentType:  nullable(textutil.Clean(raw.EmploymentType)),
		WorkMode:        nullable(textutil.Clean(raw.WorkMode)),
		Description:     raw.Description,
		ScrapedAt:       time.Now(),
	}
}

// NewError builds the error shape. The message is human-readable and may
// carry a multi-line diagnostic trace.
func NewError(url, initialURL, message string) JobOffer {
	return JobOffer{
		Status:           StatusError,
		InitialURL:       initialURL,
		URL:              url,
		ErrorDescription: message,
		ScrapedAt:        time.Now(),
	}
}

// MarshalJSON keeps the error shape minimal: error results carry no offer
// fields at all, only the failure envelope. Success results serialize the
// full schema, with explicit nulls for absent optional fields.
func (o JobOffer) MarshalJSON() ([]byte, error) {
	if o.Status == StatusError {
		return json.Marshal(struct {
			Status           string    `json:"status"`
			InitialURL       string    `json:"initial_url"`
			URL              string    `json:"url"`
			ErrorDescription string    `json:"error_description"`
			ScrapedAt        time.Time `json:"scraped_at"`
		}{o.Status, o.InitialURL, o.URL, o.ErrorDescription, o.ScrapedAt})
	}
	type alias JobOffer
	return json.Marshal(alias(o))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
