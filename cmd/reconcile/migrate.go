package main

import (
	"fmt"

	"github.com/Behyna/paylink-reconciler/internal/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the transaction id sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps()
			if err != nil {
				return err
			}

			if err := database.Migrate(cmd.Context(), d.db, d.cfg.Ledger); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date, sequence %q seeded at %d\n",
				d.cfg.Ledger.SequenceName, d.cfg.Ledger.SequenceStart)
			return err
		},
	}
}
