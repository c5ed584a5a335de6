package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Behyna/paylink-reconciler/internal/app"
	"github.com/Behyna/paylink-reconciler/internal/config"
	"github.com/Behyna/paylink-reconciler/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	Version    = "dev"
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "reconcile",
		Short:        "Operator tools for payment-link reconciliation",
		Version:      Version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config/config.yml)")

	rootCmd.AddCommand(pollCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type deps struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	ledger service.LedgerService
	poller service.PollerService
}

// loadDeps builds the shared services without starting any lifecycle hooks.
func loadDeps() (*deps, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, logger: logger}
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(cfg, logger),
		app.Core,
		fx.Populate(&d.db, &d.ledger, &d.poller),
	)
	if err := fxApp.Err(); err != nil {
		return nil, fmt.Errorf("failed to wire services: %w", err)
	}

	return d, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
