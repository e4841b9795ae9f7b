package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [pergunta]",
	Short: "Faz uma pergunta à base de legislação",
	Long:  `Resolve uma pergunta em linguagem natural contra o índice de legislação e imprime a resposta com os instrumentos consultados.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		resp := app.resolver.Resolve(cmd.Context(), args[0])

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		fmt.Println(resp.Answer)
		if len(resp.RelatedLaws) > 0 {
			fmt.Println()
			fmt.Println("Instrumentos relacionados:")
			for _, law := range resp.RelatedLaws {
				fmt.Printf("  - %s\n", law.Title)
				if law.Summary != "" {
					fmt.Printf("    %s\n", law.Summary)
				}
			}
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().Bool("json", false, "imprime a resposta em JSON")
	rootCmd.AddCommand(queryCmd)
}
