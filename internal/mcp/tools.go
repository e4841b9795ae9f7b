package mcp

import "github.com/mark3labs/mcp-go/mcp"

// consultarTool defines the consultar MCP tool.
var consultarTool = mcp.NewTool("consultar",
	mcp.WithDescription("Consulta a base de legislação ambiental (leis, decretos, resoluções COEMA e normas ABNT). Retorna a resposta e os instrumentos consultados, já excluindo legislação revogada."),
	mcp.WithString("pergunta",
		mcp.Required(),
		mcp.Description("Pergunta em linguagem natural, opcionalmente citando um número de lei"),
	),
)

// estatisticasTool defines the estatisticas MCP tool.
var estatisticasTool = mcp.NewTool("estatisticas",
	mcp.WithDescription("Retorna estatísticas do acervo indexado: total de instrumentos, total de trechos, período coberto e contagem por tipo."),
)
