package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Clean collapses runs of whitespace into single spaces and trims the result.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// Fold strips diacritics and lowercases, so "Kraków" matches "krakow".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(result)
}

// Salary patterns common on Polish job boards: "15 000 - 20 000 PLN",
// "12 000 zł", "od 9 000 PLN".
var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d[\d\s]*[-–]\s*\d[\d\s]*\s*(?:PLN|zł|EUR|USD))`),
	regexp.MustCompile(`(?i)(od\s*\d[\d\s]*\s*(?:PLN|zł|EUR|USD))`),
	regexp.MustCompile(`(?i)(\d[\d\s]*\s*(?:PLN|zł|EUR|USD))`),
}

// ExtractSalary pulls the first salary-looking fragment out of free text.
// Returns "" when nothing matches.
func ExtractSalary(text string) string {
	for _, p := range salaryPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return Clean(m[1])
		}
	}
	return ""
}
