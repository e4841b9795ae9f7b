package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/legisverde/legisverde/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Inicia o servidor MCP para integração com agentes de IA",
	Long:  `Sobe um servidor Model Context Protocol (MCP) em stdio, expondo as ferramentas consultar e estatisticas.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		mcpserver.Version = Version

		// Stdout carries the MCP protocol; status goes to stderr.
		fmt.Fprintf(os.Stderr, "legisverde MCP em stdio (trechos indexados: %d)\n",
			app.store.Count(cfg.Namespaces.Statutes)+
				app.store.Count(cfg.Namespaces.Standards)+
				app.store.Count(cfg.Namespaces.Council))

		srv := mcpserver.NewServer(app.resolver, app.stats)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
