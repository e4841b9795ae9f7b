// Package lawref parses Brazilian statute numbers and technical-standard
// codes out of free text.
package lawref

import (
	"regexp"
	"strings"
)

// lawPattern recognizes an explicit statute citation: the word "lei",
// an optional sphere qualifier, an optional number marker and then the
// number itself, either pre-formatted ("3.519", "12.345") or as 4-5
// plain digits. The pattern is intentionally greedy and will misfire on
// a bare year right after "lei" ("lei 2019"); callers treat extraction
// as a heuristic, never as ground truth.
var lawPattern = regexp.MustCompile(`(?i)\blei\s+(?:(?:estadual|ambiental|municipal|federal)\s+)?(?:n[º°o]?\.?\s*|n[uú]mero\s+)?(\d{1,2}\.\d{3}|\d{4,5})\b`)

// abntPattern recognizes ABNT/NBR technical-standard codes such as
// "ABNT NBR ISO 14040:2025" or "NBR 10004".
var abntPattern = regexp.MustCompile(`(?i)\b(?:ABNT\s+)?NBR(?:\s+ISO)?(?:\s+IEC)?\s*\d[\d.]*(?:[:-]\d{2,4})?`)

// Extract returns the normalized statute number cited in the question,
// or the empty string when no citation is present.
func Extract(question string) string {
	m := lawPattern.FindStringSubmatch(question)
	if m == nil {
		return ""
	}
	return Format(m[1])
}

// Format normalizes a statute number to the punctuated form used in
// official titles: 4 digits become D.DDD, 5 digits become DD.DDD.
// Already-punctuated numbers pass through unchanged.
func Format(number string) string {
	if strings.Contains(number, ".") {
		return number
	}
	switch len(number) {
	case 4:
		return number[:1] + "." + number[1:]
	case 5:
		return number[:2] + "." + number[2:]
	default:
		return number
	}
}

// Digits returns the digit-only form of a statute number ("3.519" ->
// "3519"), the way some index sources store it.
func Digits(number string) string {
	return strings.ReplaceAll(number, ".", "")
}

// FromTitle extracts the statute number from an instrument title such
// as "LEI Nº 3.519, DE 5 DE AGOSTO DE 2019". Returns the empty string
// for titles that don't cite a statute.
func FromTitle(title string) string {
	return Extract(title)
}

// ABNTCode returns the technical-standard code embedded in the text
// ("ABNT NBR ISO 14040:2025"), uppercased with collapsed spacing, or
// the empty string when none is present.
func ABNTCode(text string) string {
	m := abntPattern.FindString(text)
	if m == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToUpper(m)), " ")
}

// IsABNT reports whether the text carries a technical-standard code.
func IsABNT(text string) bool {
	return abntPattern.MatchString(text)
}
