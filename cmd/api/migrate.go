package main

import (
	"github.com/spf13/cobra"

	"p2p-lending-ledger/internal/infrastructure/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(needs{db: true})
		if err != nil {
			return err
		}
		defer a.close()

		if err := db.Migrate(a.db.WithContext(cmd.Context())); err != nil {
			return err
		}
		a.log.Info("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
