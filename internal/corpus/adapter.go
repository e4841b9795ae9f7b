package corpus

import (
	"strconv"

	"github.com/legisverde/legisverde/internal/lawref"
	"github.com/legisverde/legisverde/internal/vectordb"
)

// metaFirst returns the first non-empty value among the given metadata
// keys. Older scrapes used English spellings for some fields, so the
// adapter accepts both.
func metaFirst(md map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := md[k]; v != "" {
			return v
		}
	}
	return ""
}

// FromResult normalizes a vector-store result into a Chunk. The source
// kind decides which identifier fields are meaningful.
func FromResult(r vectordb.Result, kind SourceKind) Chunk {
	md := r.Document.Metadata
	if md == nil {
		md = map[string]string{}
	}

	c := Chunk{
		Text:    r.Document.Content,
		Source:  kind,
		Title:   metaFirst(md, vectordb.MetaTitle, "title"),
		Summary: metaFirst(md, vectordb.MetaSummary, "description", "descricao"),
		Status:  metaFirst(md, vectordb.MetaStatus, "status"),
		Score:   r.Similarity,
	}

	if y := md[vectordb.MetaYear]; y != "" {
		c.Year, _ = strconv.Atoi(y)
	}
	if i := md[vectordb.MetaChunkIndex]; i != "" {
		c.ChunkIndex, _ = strconv.Atoi(i)
	}
	if tot := md[vectordb.MetaChunkTotal]; tot != "" {
		c.TotalChunks, _ = strconv.Atoi(tot)
	}

	switch kind {
	case SourceStandard:
		c.Code = metaFirst(md, vectordb.MetaCode, "code")
		if c.Code == "" {
			c.Code = lawref.ABNTCode(c.Title)
		}
		c.OriginLabel = LabelABNT
	case SourceCouncil:
		c.OriginLabel = LabelCOEMA
	default:
		c.LawNumber = metaFirst(md, vectordb.MetaLawNumber, "numero", "law_number")
		if c.LawNumber == "" {
			c.LawNumber = lawref.FromTitle(c.Title)
		}
	}

	return c
}

// FromResults adapts a whole result list from one source.
func FromResults(results []vectordb.Result, kind SourceKind) []Chunk {
	chunks := make([]Chunk, len(results))
	for i, r := range results {
		chunks[i] = FromResult(r, kind)
	}
	return chunks
}
