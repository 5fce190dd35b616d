package commands

import (
	"fmt"
	"time"

	"inventory-service/internal/auth"

	"github.com/spf13/cobra"
)

var (
	// Token flags
	subject  string
	tokenTTL time.Duration
)

// tokenCmd issues an admin bearer token signed with ADMIN_JWT_SECRET
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin bearer token",
	Long: `Issue a bearer token for the catalog write routes, signed with ADMIN_JWT_SECRET.

Examples:
  catalogctl token --subject ops        # Token valid for the configured TTL
  catalogctl token --ttl 15m            # Short-lived token`,
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := auth.NewSigner(cfg.Auth.JWTSecret)
		if err != nil {
			return err
		}

		ttl := tokenTTL
		if ttl == 0 {
			ttl = cfg.Auth.TokenTTL
		}

		token, err := signer.GenerateToken(subject, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&subject, "subject", "catalog-admin", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to ADMIN_TOKEN_TTL_MINUTES)")
}
