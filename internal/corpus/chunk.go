// Package corpus defines the normalized legal-document model shared by
// the whole query pipeline. Results from any vector-index source are
// converted into a Chunk at the retrieval boundary, so downstream code
// never branches on which metadata spelling a source uses.
package corpus

import (
	"github.com/legisverde/legisverde/internal/lawref"
	"github.com/legisverde/legisverde/internal/textnorm"
)

// SourceKind identifies the content source a chunk was indexed from.
type SourceKind string

const (
	SourceStatute  SourceKind = "legislacao"
	SourceStandard SourceKind = "abnt"
	SourceCouncil  SourceKind = "coema"
	SourceCustom   SourceKind = "custom"
)

// Origin labels attached to fused secondary-source results.
const (
	LabelABNT  = "[ABNT]"
	LabelCOEMA = "[COEMA]"
)

// Chunk is one indexed span of a legal instrument. Chunks are immutable
// during query-time use.
type Chunk struct {
	// Text is the chunk's content.
	Text string
	// Source is the content source kind.
	Source SourceKind
	// Title is the parent instrument's title, e.g.
	// "LEI Nº 3.519, DE 5 DE AGOSTO DE 2019".
	Title string
	// Summary is the instrument's short description, when available.
	Summary string
	// LawNumber is the normalized statute number ("3.519"); set only
	// for statute chunks.
	LawNumber string
	// Code is the technical-standard code ("ABNT NBR ISO 14040:2025");
	// set only for standard chunks.
	Code string
	// Status is the explicit situation field some sources carry
	// ("vigente", "revogada").
	Status string
	// Year the instrument was published, zero when unknown.
	Year int
	// ChunkIndex and TotalChunks track the instrument's split.
	ChunkIndex  int
	TotalChunks int
	// OriginLabel marks fused secondary-source results ("[ABNT]",
	// "[COEMA]"); empty for plain statutes.
	OriginLabel string
	// Score is the similarity assigned by the vector index at query
	// time. Not comparable across sources.
	Score float32
}

// Identifier returns the chunk's citable identifier: the standard code
// for ABNT chunks, otherwise the statute number (falling back to the
// number embedded in the title).
func (c Chunk) Identifier() string {
	if c.Code != "" {
		return c.Code
	}
	if code := lawref.ABNTCode(c.Title); code != "" {
		return code
	}
	if c.LawNumber != "" {
		return c.LawNumber
	}
	return lawref.FromTitle(c.Title)
}

// DisplayTitle returns the title prefixed with the chunk's origin label
// when it came from a secondary source.
func (c Chunk) DisplayTitle() string {
	label := c.OriginLabel
	if label == "" {
		switch {
		case c.Source == SourceStandard || lawref.IsABNT(c.Title) || lawref.IsABNT(c.Code):
			label = LabelABNT
		case c.Source == SourceCouncil:
			label = LabelCOEMA
		}
	}
	if label == "" {
		return c.Title
	}
	return label + " " + c.Title
}

// Fingerprint returns the dedup key: the normalized title plus the
// first 100 characters of the normalized text.
func (c Chunk) Fingerprint() string {
	text := textnorm.Normalize(c.Text)
	if len(text) > 100 {
		text = text[:100]
	}
	return textnorm.Normalize(c.Title) + "|" + text
}

// Dedup removes chunks whose fingerprint duplicates an earlier chunk,
// preserving order.
func Dedup(chunks []Chunk) []Chunk {
	seen := make(map[string]bool, len(chunks))
	out := chunks[:0:0]
	for _, c := range chunks {
		fp := c.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, c)
	}
	return out
}
