// internal/commands/serve.go
package matboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/matboard/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd exposes the leaderboard over HTTP until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the leaderboard JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := loadSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg := activeConfig()
		defaults, err := cfg.LeaderboardOptions()
		if err != nil {
			return err
		}

		port := cfg.Port()
		srv, err := server.New(session.Records(), defaults, server.Config{
			Port:        port,
			CorsOrigins: cfg.CorsOrigins,
			Downloads:   cfg.Downloads,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d models on :%s (Ctrl+C to stop)\n", len(session.Records()), port)
		if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "port to listen on (default 8080)")
	_ = viper.BindPFlag("serverPort", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}
