package cmd

import (
	"github.com/spf13/cobra"

	"github.com/legisverde/legisverde/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Cria o arquivo de configuração interativamente",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
