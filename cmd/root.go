// Package cmd implements the legisverde command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "legisverde",
	Short: "Assistente de consulta à legislação ambiental brasileira",
	Long: `Legisverde indexa leis, decretos, resoluções do COEMA e normas técnicas
ABNT em um banco vetorial e responde perguntas em linguagem natural,
excluindo automaticamente a legislação revogada e citando os
instrumentos consultados.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".legisverde.yml", "caminho do arquivo de configuração")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "saída detalhada")
}
