package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const envSecret = "NOTEHUB_SERVER_SECRET"

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notehub-server",
	Short: "A local notes API for developing and testing notehub",
	Long: `notehub-server serves the notes API that the notehub client talks to.
Notes are stored in SQLite. Requests are authenticated with HS256 bearer
tokens when a secret is configured.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// secretOrEnv returns flag when set, otherwise the secret from the environment.
func secretOrEnv(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envSecret)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
