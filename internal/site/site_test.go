package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-offer-scraper/internal/offer"
)

func classify(url string) offer.Source {
	for _, a := range Adapters() {
		if a.Match(url) {
			return a.Source()
		}
	}
	return offer.SourceUnknown
}

func TestClassify(t *testing.T) {
	cases := []struct {
		url  string
		want offer.Source
	}{
		{"https://justjoin.it/job-offer/acme-go-developer", offer.SourceJustJoin},
		{"https://theprotocol.it/szczegoly/praca/go-dev,oferta,abc123", offer.SourceTheProtocol},
		{"https://www.pracuj.pl/praca/go-developer-warszawa,oferta,10034", offer.SourcePracuj},
		{"https://www.linkedin.com/jobs/view/4350691274", offer.SourceLinkedIn},
		{"https://www.linkedin.com/jobs/search/?currentJobId=123", offer.SourceLinkedIn},
		{"HTTPS://JUSTJOIN.IT/JOB-OFFER/X", offer.SourceJustJoin},
		{"https://www.linkedin.com/in/someone", offer.SourceUnknown},
		{"https://indeed.com/viewjob?jk=1", offer.SourceUnknown},
		{"not a url at all", offer.SourceUnknown},
		{"", offer.SourceUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, classify(c.url), "url: %q", c.url)
	}
}

func TestAdapters_FixedPriorityOrder(t *testing.T) {
	adapters := Adapters()
	require.Len(t, adapters, 4)

	var order []offer.Source
	for _, a := range adapters {
		order = append(order, a.Source())
	}
	assert.Equal(t, []offer.Source{
		offer.SourceJustJoin,
		offer.SourceTheProtocol,
		offer.SourcePracuj,
		offer.SourceLinkedIn,
	}, order)
}

func TestCanonicalURL_IdentityForMostSources(t *testing.T) {
	url := "https://justjoin.it/job-offer/x?utm_source=newsletter"
	assert.Equal(t, url, NewJustJoin().CanonicalURL(url))
	assert.Equal(t, url, NewTheProtocol().CanonicalURL(url))
	assert.Equal(t, url, NewPracuj().CanonicalURL(url))
}
