package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/usecase/overdue"
)

// sweepOverdueCmd is the entry point for an external scheduler (cron,
// CronJob). It runs the overdue marker once and exits.
var sweepOverdueCmd = &cobra.Command{
	Use:   "sweep-overdue",
	Short: "Mark past-due schedule rows as OVERDUE once",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(needs{db: true})
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout())
		defer cancel()
		n, err := overdue.NewUsecase(mysql.NewScheduleRepository(a.db), a.log, nil).Sweep(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows marked overdue\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepOverdueCmd)
}
