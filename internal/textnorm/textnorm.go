// Package textnorm canonicalizes Portuguese legal text for diacritic- and
// case-insensitive matching. Scraped legislation uses accents
// inconsistently ("proteção" vs "protecao"), so all matching in the query
// pipeline happens over folded text.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform decomposes to NFKD, drops combining marks, then
// recomposes. Compatibility decomposition also folds the ordinal
// indicators ("nº" -> "no") that pervade statute titles.
var foldTransform = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the text, strips diacritic marks, replaces
// non-alphanumeric runs with single spaces and collapses whitespace.
// Idempotent; empty input yields the empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	folded, _, err := transform.String(foldTransform, lowered)
	if err != nil {
		// Fold failures leave the lowered text; matching degrades but
		// never errors.
		folded = lowered
	}

	var sb strings.Builder
	sb.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			sb.WriteByte(' ')
			lastSpace = true
		}
	}

	return strings.TrimSpace(sb.String())
}

// Normalizer compacts queries by removing stopwords while retaining a
// fixed allow-list of legal-domain terms.
type Normalizer struct {
	stopwords map[string]bool
	keep      map[string]bool
}

// New creates a Normalizer. Both lists are folded via Normalize so
// accented and unaccented spellings configure the same token.
func New(stopwords, legalTerms []string) *Normalizer {
	n := &Normalizer{
		stopwords: make(map[string]bool, len(stopwords)),
		keep:      make(map[string]bool, len(legalTerms)),
	}
	for _, w := range stopwords {
		n.stopwords[Normalize(w)] = true
	}
	for _, w := range legalTerms {
		n.keep[Normalize(w)] = true
	}
	return n
}

// CompactQuery normalizes the text and drops stopword tokens. Legal-domain
// terms survive regardless of length, as does any token longer than three
// characters that is not a stopword. If compaction would remove
// everything, the normalized text is returned untouched so retrieval
// always has something to search for.
func (n *Normalizer) CompactQuery(text string) string {
	normalized := Normalize(text)
	if normalized == "" {
		return ""
	}

	var kept []string
	for _, tok := range strings.Fields(normalized) {
		switch {
		case n.keep[tok]:
			kept = append(kept, tok)
		case n.stopwords[tok]:
			// dropped
		case len(tok) > 3:
			kept = append(kept, tok)
		}
	}

	if len(kept) == 0 {
		return normalized
	}
	return strings.Join(kept, " ")
}
