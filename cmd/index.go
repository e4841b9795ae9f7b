package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/legisverde/legisverde/internal/ingest"
	"github.com/legisverde/legisverde/internal/progress"
	"github.com/legisverde/legisverde/internal/stats"
	"github.com/legisverde/legisverde/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index [padrão]",
	Short: "Indexa o corpus de legislação no banco vetorial",
	Long: `Lê arquivos JSON de instrumentos normativos (um objeto ou uma lista por
arquivo), divide os textos em trechos, grava o registro de instrumentos
e constrói o índice vetorial. O padrão aceita curingas doublestar,
por exemplo "corpus/**/*.json".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "corpus/**/*.json"
		if len(args) == 1 {
			pattern = args[0]
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := createEmbedder(cfg)
		if err != nil {
			return fmt.Errorf("criando embedder: %w", err)
		}

		store := vectordb.NewChromemStore(embedder)
		// Merge into an existing index when one is present.
		if err := store.Load(cmd.Context(), cfg.DataDir); err == nil {
			fmt.Printf("Índice existente carregado de %s\n", cfg.DataDir)
		}

		registry, err := stats.Open(filepath.Join(cfg.DataDir, "registry.db"))
		if err != nil {
			return fmt.Errorf("abrindo registro de instrumentos: %w", err)
		}
		defer registry.Close()

		ing := ingest.New(store, registry, progress.NewReporter(), cfg.Namespaces, cfg.DataDir)

		summary, err := ing.Run(cmd.Context(), pattern)
		if err != nil {
			return err
		}

		fmt.Printf("Indexação concluída: %d arquivo(s), %d instrumento(s), %d trecho(s)",
			summary.Files, summary.Instruments, summary.Chunks)
		if summary.Skipped > 0 {
			fmt.Printf(", %d arquivo(s) ignorado(s)", summary.Skipped)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
