package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/nrql"
)

func newHorizonCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "horizon <nrql>",
		Short: "Print the forecast horizon of a predictLinear query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := nrql.ParsePredictLinear(args[0])
			if err != nil {
				return withCode(ExitConfigError, err)
			}
			if asJSON {
				data, err := json.Marshal(struct {
					Metric string `json:"metric"`
					Amount int    `json:"amount"`
					Unit   string `json:"unit"`
					Days   int    `json:"days"`
				}{p.Metric, p.Amount, string(p.Unit), p.Days()})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Days())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the parsed call as JSON")
	return cmd
}
