package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/legisverde/legisverde/internal/resolver"
)

// handleConsultar resolves one question through the full pipeline.
func (s *Server) handleConsultar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pergunta, err := request.RequireString("pergunta")
	if err != nil {
		return mcp.NewToolResultError("parâmetro obrigatório ausente: pergunta"), nil
	}
	if strings.TrimSpace(pergunta) == "" {
		return mcp.NewToolResultError("o parâmetro \"pergunta\" não pode ser vazio"), nil
	}

	resp := s.resolver.Resolve(ctx, pergunta)
	return mcp.NewToolResultText(formatResponse(resp)), nil
}

// handleEstatisticas reports corpus statistics.
func (s *Server) handleEstatisticas(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.stats.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("estatísticas indisponíveis: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Instrumentos indexados: %d\n", snap.Instruments)
	fmt.Fprintf(&sb, "Trechos pesquisáveis: %d\n", snap.Chunks)
	if snap.YearMin > 0 {
		fmt.Fprintf(&sb, "Período coberto: %d a %d\n", snap.YearMin, snap.YearMax)
	}
	if len(snap.ByType) > 0 {
		sb.WriteString("Por tipo:\n")
		types := make([]string, 0, len(snap.ByType))
		for t := range snap.ByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Fprintf(&sb, "- %s: %d\n", t, snap.ByType[t])
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatResponse renders a resolver response as text for agent
// consumption.
func formatResponse(resp *resolver.Response) string {
	var sb strings.Builder
	sb.WriteString(resp.Answer)

	if len(resp.RelatedLaws) > 0 {
		sb.WriteString("\n\nInstrumentos relacionados:\n")
		for _, law := range resp.RelatedLaws {
			fmt.Fprintf(&sb, "- %s", law.Title)
			if law.Summary != "" {
				fmt.Fprintf(&sb, ": %s", law.Summary)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
