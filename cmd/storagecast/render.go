package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/source"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		days            int
		predictionQuery string
	)

	cmd := &cobra.Command{
		Use:   "render [response.json|results.xlsx]",
		Short: "Project a forecast from saved query results",
		Long: `Render reads the total, used and prediction result sets from a saved
NerdGraph response (.json) or a workbook with total, used and prediction
sheets (.xlsx), then projects and writes the forecast.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(cmd, nil); err != nil {
				return err
			}
			inputPath := args[0]

			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return withCode(ExitUsageError, fmt.Errorf("file not found: %s", inputPath))
			}

			query := a.cfg.Queries.Prediction
			if predictionQuery != "" {
				query = predictionQuery
			}
			n, err := horizonDays(days, query)
			if err != nil {
				return err
			}

			res, err := readResults(inputPath)
			if err != nil {
				return withCode(ExitDataError, fmt.Errorf("reading %s: %w", inputPath, err))
			}
			a.logger.Debug("results loaded",
				"file", inputPath,
				"total", len(res.Total),
				"used", len(res.Used),
				"prediction", len(res.Prediction),
			)

			return a.project(cmd, res, n)
		},
	}

	cmd.Flags().IntVar(&days, "days", -1, "Forecast horizon in days (default: from the prediction query)")
	cmd.Flags().StringVar(&predictionQuery, "prediction-query", "", "NRQL predictLinear query to read the horizon from")
	return cmd
}

func readResults(path string) (*source.Results, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return source.ReadWorkbook(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return source.ReadResponse(f)
}
