package main

import (
	"errors"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errPollModes = errors.New("--transaction-id and --all are mutually exclusive")

func pollCmd() *cobra.Command {
	var (
		transactionID string
		all           bool
		since         time.Duration
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Ask the processor for current payment-link states and reconcile changes",
		Long: `Poll the payment processor and feed any state change through reconciliation.

Modes:
  --transaction-id ID   poll one transaction
  --all                 poll every pending transaction
  (default)             poll pending transactions created within --since

Examples:
  reconcile poll --transaction-id 100042
  reconcile poll --all --limit 500
  reconcile poll --since 6h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transactionID != "" && all {
				return errPollModes
			}

			d, err := loadDeps()
			if err != nil {
				return err
			}
			defer func() { _ = d.logger.Sync() }()

			ctx := cmd.Context()

			var result service.PollBatchResult
			switch {
			case transactionID != "":
				result, err = d.poller.PollByTransactionID(ctx, transactionID)
			case all:
				result, err = d.poller.PollPending(ctx, limit)
			default:
				result, err = d.poller.PollSince(ctx, time.Now().Add(-since), limit)
			}
			if err != nil {
				return err
			}

			d.logger.Info("Poll finished",
				zap.Int("checked", result.Checked),
				zap.Int("updated", result.Updated),
				zap.Int("skipped", result.Skipped),
				zap.Int("failed", result.Failed))

			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&transactionID, "transaction-id", "t", "", "poll a single transaction")
	cmd.Flags().BoolVar(&all, "all", false, "poll every pending transaction")
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "trailing creation window for the default mode")
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "maximum transactions per run")

	return cmd
}
