package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/legisverde/legisverde/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia a API HTTP de consulta",
	Long:  `Sobe o servidor HTTP com os endpoints /api/consultar, /api/estatisticas e /healthz.`,
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

		srv := server.New(server.Config{
			Port:        cfg.Server.Port,
			MaxInflight: cfg.Retrieval.MaxInflight,
			AllowAll:    cfg.Server.AllowAll,
		}, app.resolver, app.stats)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-stop:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
