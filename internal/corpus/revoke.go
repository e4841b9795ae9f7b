package corpus

import (
	"log"
	"strings"
)

// RevocationFilter excludes legal instruments that are no longer in
// force. Presenting superseded law as current is the worst failure mode
// this system has, so the filter runs after every retrieval stage.
type RevocationFilter struct {
	markers []string
}

// NewRevocationFilter builds a filter from the configured marker list.
// Markers are matched lowercased.
func NewRevocationFilter(markers []string) *RevocationFilter {
	lowered := make([]string, 0, len(markers))
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			lowered = append(lowered, m)
		}
	}
	return &RevocationFilter{markers: lowered}
}

// IsRevoked reports whether any of the chunk's text fields carries a
// revocation marker.
func (f *RevocationFilter) IsRevoked(c Chunk) bool {
	for _, field := range []string{c.Title, c.Summary, c.Text, c.Status} {
		if field == "" {
			continue
		}
		lowered := strings.ToLower(field)
		for _, marker := range f.markers {
			if strings.Contains(lowered, marker) {
				return true
			}
		}
	}
	return false
}

// Filter returns the chunks that are still in force, preserving order.
// Idempotent. One log line per removed chunk plus a summary count keeps
// the exclusions observable.
func (f *RevocationFilter) Filter(chunks []Chunk) []Chunk {
	kept := chunks[:0:0]
	removed := 0
	for _, c := range chunks {
		if f.IsRevoked(c) {
			log.Printf("revocation: excluindo instrumento revogado: %s", c.Title)
			removed++
			continue
		}
		kept = append(kept, c)
	}
	if removed > 0 {
		log.Printf("revocation: %d trecho(s) removido(s) por revogação", removed)
	}
	return kept
}
