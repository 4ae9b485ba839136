package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcus/notehub/internal/devserver"
)

var (
	serveAddr   string
	serveDB     string
	serveSecret string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notes API",
	Long: `Serve the notes API on --addr. With --db set to a file path, notes
survive restarts; the default ":memory:" starts empty every time.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := devserver.NewStore(serveDB)
		if err != nil {
			fatal("Error opening store", err)
		}
		defer store.Close()

		router := devserver.NewRouter(store, devserver.Options{Secret: secretOrEnv(serveSecret)})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("notes api", "addr", serveAddr, "db", serveDB)
		if err := devserver.Run(ctx, serveAddr, router); err != nil {
			store.Close()
			fatal("Error serving", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDB, "db", ":memory:", "SQLite database path")
	serveCmd.Flags().StringVar(&serveSecret, "secret", "", "Token signing secret (default $"+envSecret+"; empty disables auth)")
	rootCmd.AddCommand(serveCmd)
}
