package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Mostra estatísticas do acervo indexado",
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

		snap, err := app.stats.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("coletando estatísticas: %w", err)
		}

		fmt.Printf("Instrumentos indexados: %d\n", snap.Instruments)
		fmt.Printf("Trechos pesquisáveis:   %d\n", snap.Chunks)
		if snap.YearMin > 0 {
			fmt.Printf("Período coberto:        %d a %d\n", snap.YearMin, snap.YearMax)
		}
		if len(snap.ByType) > 0 {
			fmt.Println("Por tipo:")
			types := make([]string, 0, len(snap.ByType))
			for t := range snap.ByType {
				types = append(types, t)
			}
			sort.Strings(types)
			for _, t := range types {
				fmt.Printf("  %-15s %d\n", t, snap.ByType[t])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
