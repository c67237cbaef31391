package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/nerdgraph"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/source"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		accountID int64
		days      int
		saveRaw   string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Query NerdGraph and project a forecast",
		Long: `Fetch runs the configured total, used and prediction NRQL queries
against one New Relic account in a single NerdGraph request, then projects
and writes the forecast. The horizon is read from the predictLinear call in
the prediction query unless --days is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := map[string]interface{}{}
			if cmd.Flags().Changed("account-id") {
				extra["account_id"] = accountID
			}
			if err := a.initConfig(cmd, extra); err != nil {
				return err
			}
			cfg := a.cfg

			if cfg.AccountID <= 0 {
				return withCode(ExitConfigError, fmt.Errorf("account_id is required"))
			}
			if cfg.APIKey == "" {
				return withCode(ExitConfigError, fmt.Errorf("api_key is required (or STORAGECAST_API_KEY)"))
			}
			queries := nerdgraph.Queries{
				Total:      cfg.Queries.Total,
				Used:       cfg.Queries.Used,
				Prediction: cfg.Queries.Prediction,
			}
			if err := queries.Validate(); err != nil {
				return withCode(ExitConfigError, err)
			}
			n, err := horizonDays(days, queries.Prediction)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			client := nerdgraph.New(cfg.APIKey,
				nerdgraph.WithEndpoint(cfg.Endpoint),
				nerdgraph.WithLogger(a.logger),
			)
			a.logger.Info("querying nerdgraph", "account_id", cfg.AccountID, "horizon_days", n)
			res, err := client.Fetch(ctx, cfg.AccountID, queries)
			if err != nil {
				return withCode(ExitQueryError, err)
			}

			if saveRaw != "" {
				if err := saveResults(saveRaw, res); err != nil {
					return fmt.Errorf("saving raw results: %w", err)
				}
				a.logger.Debug("raw results saved", "path", saveRaw)
			}

			return a.project(cmd, res, n)
		},
	}

	cmd.Flags().Int64Var(&accountID, "account-id", 0, "New Relic account ID (default: account_id from config)")
	cmd.Flags().IntVar(&days, "days", -1, "Forecast horizon in days (default: from the prediction query)")
	cmd.Flags().StringVar(&saveRaw, "save-raw", "", "Also save the raw NerdGraph results to this file for 'render'")
	return cmd
}

func saveResults(path string, res *source.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := source.WriteResponse(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
