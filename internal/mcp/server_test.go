package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/legisverde/legisverde/internal/resolver"
	"github.com/legisverde/legisverde/internal/stats"
)

type fakeResolver struct {
	resp *resolver.Response
}

func (f *fakeResolver) Resolve(context.Context, string) *resolver.Response { return f.resp }

type fakeStats struct {
	snap *stats.Snapshot
}

func (f *fakeStats) Snapshot(context.Context) (*stats.Snapshot, error) { return f.snap, nil }

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{consultarTool, "consultar"},
		{estatisticasTool, "estatisticas"},
	}
	for _, tt := range tests {
		if tt.tool.Name != tt.wantName {
			t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
		}
		if tt.tool.Description == "" {
			t.Errorf("tool %q has no description", tt.wantName)
		}
	}
}

func TestFormatResponse(t *testing.T) {
	resp := &resolver.Response{
		Answer: "Lei nº 3.519:\n\nresposta\n\nLeis consultadas: 3.519",
		RelatedLaws: []resolver.RelatedLaw{
			{Title: "LEI Nº 3.519, DE 2019", Summary: "Dispõe sobre resíduos sólidos"},
			{Title: "[ABNT] ABNT NBR 10004:2004"},
		},
	}

	got := formatResponse(resp)
	if !strings.Contains(got, "Leis consultadas: 3.519") {
		t.Errorf("answer body missing: %s", got)
	}
	if !strings.Contains(got, "- LEI Nº 3.519, DE 2019: Dispõe sobre resíduos sólidos") {
		t.Errorf("related law line missing: %s", got)
	}
	if !strings.Contains(got, "- [ABNT] ABNT NBR 10004:2004") {
		t.Errorf("labeled standard missing: %s", got)
	}
}

func TestHandleEstatisticas(t *testing.T) {
	s := NewServer(&fakeResolver{resp: &resolver.Response{}}, &fakeStats{snap: &stats.Snapshot{
		Instruments: 42,
		Chunks:      812,
		YearMin:     1990,
		YearMax:     2024,
		ByType:      map[string]int{"lei": 30, "decreto": 12},
	}})

	result, err := s.handleEstatisticas(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	text := result.Content[0].(mcp.TextContent).Text
	for _, want := range []string{"42", "812", "1990 a 2024", "lei: 30", "decreto: 12"} {
		if !strings.Contains(text, want) {
			t.Errorf("estatisticas output missing %q:\n%s", want, text)
		}
	}
}
