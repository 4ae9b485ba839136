package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/notehub/internal/devserver"
)

var (
	tokenSecret  string
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the notes API",
	Long: `Print a signed token for the given subject. Put it in the client's
config under api.token or export it as NOTEHUB_TOKEN.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		secret := secretOrEnv(tokenSecret)
		if secret == "" {
			fatal("Error minting token", errors.New("no secret: pass --secret or set "+envSecret))
		}

		token, err := devserver.MintToken(secret, tokenSubject, tokenTTL)
		if err != nil {
			fatal("Error minting token", err)
		}
		fmt.Println(token)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "Token signing secret (default $"+envSecret+")")
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "notehub", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime; 0 never expires")
	rootCmd.AddCommand(tokenCmd)
}
