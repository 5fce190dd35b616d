package commands

import (
	"context"
	"fmt"
	"time"

	"inventory-service/internal/store"

	"github.com/spf13/cobra"
)

var (
	// Migrate flags
	dryRun         bool
	migrateTimeout time.Duration
)

// migrateCmd creates the catalog tables
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the catalog tables",
	Long: `Create every catalog table, index and constraint that does not exist yet.
Tables are created in dependency order inside one transaction.

Examples:
  catalogctl migrate                    # Apply the schema
  catalogctl migrate --dry-run          # Print the DDL without connecting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dryRun {
			fmt.Fprint(cmd.OutOrStdout(), store.SchemaSQL())
			return nil
		}
		return runMigrate(cmd)
	},
}

func runMigrate(cmd *cobra.Command) error {
	db, err := store.NewStore(dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	for _, name := range store.TableNames() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the DDL instead of applying it")
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 30*time.Second, "Migration timeout")
}
