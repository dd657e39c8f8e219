package site

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJustJoinScrape_SalaryFallbackFromDescription(t *testing.T) {
	page := &fakePage{
		evalFn: extractionResult(map[string]any{
			"title":       "Go Developer",
			"company":     "Acme",
			"description": "We offer 16 000 - 22 000 PLN on B2B.\n\nTech Stack: Go, Postgres",
		}),
	}

	fields, err := NewJustJoin().Scrape(context.Background(), page, "https://justjoin.it/job-offer/x")
	require.NoError(t, err)

	assert.Equal(t, "16 000 - 22 000 PLN", fields.Salary)
}

func TestJustJoinScrape_KeepsExtractedSalary(t *testing.T) {
	page := &fakePage{
		evalFn: extractionResult(map[string]any{
			"title":       "Go Developer",
			"salary":      "20 000 - 26 000 PLN",
			"description": "We offer 1 PLN", // must not override
		}),
	}

	fields, err := NewJustJoin().Scrape(context.Background(), page, "https://justjoin.it/job-offer/x")
	require.NoError(t, err)

	assert.Equal(t, "20 000 - 26 000 PLN", fields.Salary)
}

func TestJustJoinScrape_LevelFromTitle(t *testing.T) {
	page := &fakePage{
		evalFn: extractionResult(map[string]any{
			"title": "Senior Gölang Developer",
		}),
	}

	fields, err := NewJustJoin().Scrape(context.Background(), page, "https://justjoin.it/job-offer/x")
	require.NoError(t, err)

	assert.Equal(t, "Senior", fields.ExperienceLevel)
}

func TestLevelFromTitle(t *testing.T) {
	assert.Equal(t, "Junior", levelFromTitle("Junior Data Engineer"))
	assert.Equal(t, "Mid", levelFromTitle("Mid Golang Developer"))
	assert.Equal(t, "Senior", levelFromTitle("SENIOR backend dev"))
	assert.Equal(t, "", levelFromTitle("Backend Developer"))
	assert.Equal(t, "", levelFromTitle(""))
}

func TestJustJoinScrape_DismissesConsent(t *testing.T) {
	page := &fakePage{
		visible: map[string]bool{"button:has-text('Accept'), button:has-text('Akceptuj')": true},
		evalFn:  extractionResult(map[string]any{"title": "T"}),
	}

	_, err := NewJustJoin().Scrape(context.Background(), page, "https://justjoin.it/job-offer/x")
	require.NoError(t, err)
	assert.Contains(t, page.steps, "click:button:has-text('Accept'), button:has-text('Akceptuj')")
}
