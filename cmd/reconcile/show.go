package main

import (
	"errors"

	"github.com/Behyna/paylink-reconciler/internal/model"
	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	var orderID string

	cmd := &cobra.Command{
		Use:   "show [transaction-id]",
		Short: "Print a ledger row by transaction id or --order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && orderID == "" {
				return errors.New("a transaction id or --order is required")
			}

			d, err := loadDeps()
			if err != nil {
				return err
			}

			var tx *model.Transaction
			if len(args) == 1 {
				tx, err = d.ledger.FindByTransactionID(cmd.Context(), args[0])
			} else {
				tx, err = d.ledger.FindByOrderID(cmd.Context(), orderID)
			}
			if err != nil {
				return err
			}

			return printJSON(cmd, tx)
		},
	}

	cmd.Flags().StringVarP(&orderID, "order", "o", "", "look up the latest transaction for a storefront order")

	return cmd
}
