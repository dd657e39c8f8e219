package offer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuccess_AppliesSentinels(t *testing.T) {
	o := NewSuccess(RawFields{}, SourceJustJoin, "https://justjoin.it/job-offer/x", "https://justjoin.it/job-offer/x")

	assert.Equal(t, StatusSuccess, o.Status)
	assert.Equal(t, UnknownTitle, o.Title)
	assert.Equal(t, UnknownCompany, o.Company)
	assert.Equal(t, "", o.Description)
	assert.Nil(t, o.Location)
	assert.Nil(t, o.Salary)
	assert.Nil(t, o.ExperienceLevel)
	assert.Nil(t, o.EmploymentType)
	assert.Nil(t, o.WorkMode)
	assert.False(t, o.ScrapedAt.IsZero())
}

func TestNewSuccess_CleansSingleLineFields(t *testing.T) {
	raw := RawFields{
		Title:    "  Senior\n Go   Developer ",
		Company:  " Acme\tCorp ",
		Location: "Warszawa,  Poland",
		Salary:   "15 000 - 20 000  PLN",
	}
	o := NewSuccess(raw, SourcePracuj, "https://pracuj.pl/x", "https://pracuj.pl/x")

	assert.Equal(t, "Senior Go Developer", o.Title)
	assert.Equal(t, "Acme Corp", o.Company)
	require.NotNil(t, o.Location)
	assert.Equal(t, "Warszawa, Poland", *o.Location)
	require.NotNil(t, o.Salary)
	assert.Equal(t, "15 000 - 20 000 PLN", *o.Salary)
}

func TestNewSuccess_PreservesInitialURL(t *testing.T) {
	o := NewSuccess(RawFields{Title: "X"}, SourceLinkedIn,
		"https://www.linkedin.com/jobs/view/123",
		"https://www.linkedin.com/jobs/search/?currentJobId=123")

	assert.Equal(t, "https://www.linkedin.com/jobs/search/?currentJobId=123", o.InitialURL)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/123", o.URL)
}

func TestNewError_Shape(t *testing.T) {
	o := NewError("https://x", "https://x ", "Timeout: Page took longer than 30s to load")

	assert.Equal(t, StatusError, o.Status)
	assert.Equal(t, "https://x ", o.InitialURL)
	assert.Equal(t, "Timeout: Page took longer than 30s to load", o.ErrorDescription)
	assert.False(t, o.ScrapedAt.IsZero())
}

func TestMarshal_ErrorShapeOmitsOfferFields(t *testing.T) {
	o := NewError("https://x", "https://x", "boom")

	data, err := json.Marshal(o)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Equal(t, "error", m["status"])
	assert.Equal(t, "boom", m["error_description"])
	assert.NotContains(t, m, "title")
	assert.NotContains(t, m, "company")
	assert.NotContains(t, m, "source")
	assert.NotContains(t, m, "location")
}

func TestMarshal_SuccessShapeHasExplicitNulls(t *testing.T) {
	o := NewSuccess(RawFields{Title: "Dev", Company: "Acme", WorkMode: "Remote"},
		SourceTheProtocol, "https://theprotocol.it/x", "https://theprotocol.it/x")

	data, err := json.Marshal(o)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	// absent optional fields are null, never empty strings
	assert.Contains(t, m, "location")
	assert.Nil(t, m["location"])
	assert.Contains(t, m, "salary")
	assert.Nil(t, m["salary"])
	assert.Equal(t, "Remote", m["work_mode"])
	assert.Equal(t, "theprotocol", m["source"])
	assert.NotContains(t, m, "error_description")
}

func TestMarshal_RoundTrip(t *testing.T) {
	o := NewSuccess(RawFields{
		Title: "Dev", Company: "Acme", Location: "Gdańsk", Description: "Body",
	}, SourceJustJoin, "https://justjoin.it/x", "https://justjoin.it/x")

	data, err := json.Marshal(o)
	require.NoError(t, err)

	var back JobOffer
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, o.Title, back.Title)
	assert.Equal(t, o.Company, back.Company)
	require.NotNil(t, back.Location)
	assert.Equal(t, "Gdańsk", *back.Location)
	assert.Equal(t, o.Description, back.Description)
	assert.Nil(t, back.Salary)
}
