package corpus

import (
	"testing"

	"github.com/legisverde/legisverde/internal/vectordb"
)

func TestFromResultStatute(t *testing.T) {
	r := vectordb.Result{
		Document: vectordb.Document{
			Content: "Art. 1º Fica instituída a política estadual...",
			Metadata: map[string]string{
				vectordb.MetaTitle:     "LEI Nº 3.519, DE 5 DE AGOSTO DE 2019",
				vectordb.MetaSummary:   "Dispõe sobre resíduos sólidos",
				vectordb.MetaLawNumber: "3.519",
				vectordb.MetaYear:      "2019",
			},
		},
		Similarity: 0.91,
	}

	c := FromResult(r, SourceStatute)
	if c.LawNumber != "3.519" {
		t.Errorf("LawNumber = %q", c.LawNumber)
	}
	if c.Year != 2019 {
		t.Errorf("Year = %d", c.Year)
	}
	if c.OriginLabel != "" {
		t.Errorf("statute should carry no origin label, got %q", c.OriginLabel)
	}
	if c.Identifier() != "3.519" {
		t.Errorf("Identifier = %q", c.Identifier())
	}
	if c.DisplayTitle() != c.Title {
		t.Errorf("DisplayTitle = %q", c.DisplayTitle())
	}
}

func TestFromResultStatuteNumberFromTitle(t *testing.T) {
	r := vectordb.Result{
		Document: vectordb.Document{
			Content:  "texto",
			Metadata: map[string]string{"title": "LEI Nº 1.307, DE 2002"},
		},
	}
	c := FromResult(r, SourceStatute)
	if c.Title != "LEI Nº 1.307, DE 2002" {
		t.Errorf("legacy title key not honored: %q", c.Title)
	}
	if c.LawNumber != "1.307" {
		t.Errorf("LawNumber not derived from title: %q", c.LawNumber)
	}
}

func TestFromResultStandard(t *testing.T) {
	r := vectordb.Result{
		Document: vectordb.Document{
			Content: "Esta norma especifica princípios de avaliação do ciclo de vida",
			Metadata: map[string]string{
				vectordb.MetaTitle: "ABNT NBR ISO 14040:2025",
				vectordb.MetaCode:  "ABNT NBR ISO 14040:2025",
			},
		},
	}

	c := FromResult(r, SourceStandard)
	if c.OriginLabel != LabelABNT {
		t.Errorf("OriginLabel = %q", c.OriginLabel)
	}
	if c.Identifier() != "ABNT NBR ISO 14040:2025" {
		t.Errorf("Identifier = %q", c.Identifier())
	}
	if got := c.DisplayTitle(); got != "[ABNT] ABNT NBR ISO 14040:2025" {
		t.Errorf("DisplayTitle = %q", got)
	}
}

func TestFromResultCouncil(t *testing.T) {
	r := vectordb.Result{
		Document: vectordb.Document{
			Content:  "Resolução que disciplina o licenciamento simplificado",
			Metadata: map[string]string{vectordb.MetaTitle: "RESOLUÇÃO COEMA Nº 02/2021"},
		},
	}

	c := FromResult(r, SourceCouncil)
	if c.OriginLabel != LabelCOEMA {
		t.Errorf("OriginLabel = %q", c.OriginLabel)
	}
	if got := c.DisplayTitle(); got != "[COEMA] RESOLUÇÃO COEMA Nº 02/2021" {
		t.Errorf("DisplayTitle = %q", got)
	}
}

func TestDedup(t *testing.T) {
	a := Chunk{Title: "LEI Nº 1.307, DE 2002", Text: "conteúdo original da lei sobre florestas"}
	// Same title, same leading content, different tail beyond 100 chars
	// of normalized text would still dedup; use identical prefix.
	dup := Chunk{Title: "LEI Nº 1.307, DE 2002", Text: "conteúdo original da lei sobre florestas"}
	other := Chunk{Title: "LEI Nº 1.307, DE 2002", Text: "conteúdo totalmente distinto sobre fauna"}

	got := Dedup([]Chunk{a, dup, other})
	if len(got) != 2 {
		t.Fatalf("Dedup returned %d chunks, want 2", len(got))
	}
	if got[0].Text != a.Text || got[1].Text != other.Text {
		t.Errorf("Dedup changed order or kept wrong chunks: %+v", got)
	}
}

func TestDedupAccentInsensitive(t *testing.T) {
	a := Chunk{Title: "LEI Nº 10", Text: "proteção das águas"}
	b := Chunk{Title: "LEI No 10", Text: "protecao das aguas"}
	if got := Dedup([]Chunk{a, b}); len(got) != 1 {
		t.Errorf("accent variants should dedup, got %d chunks", len(got))
	}
}
