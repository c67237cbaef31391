// Package main provides the CLI entry point for storagecast.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/internal/config"
)

// version is set at build time via ldflags
var version = "dev"

// app carries state shared by all subcommands.
type app struct {
	cfgFile  string
	verbose  bool
	format   string
	output   string
	pretty   bool
	timezone string
	cfg      *config.Config
	logger   *slog.Logger
}

func main() {
	rootCmd := newRootCmd(&app{})
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "storagecast",
		Short: "Forecast storage capacity from New Relic metrics",
		Long: `storagecast merges total and used storage time series with a
predictLinear target and extrapolates a daily forecast.

Example usage:
  storagecast fetch --format table          # query NerdGraph and print a table
  storagecast render response.json -o out.xlsx --format xlsx
  storagecast horizon "SELECT predictLinear(host.diskUsedBytes, 90 days) FROM Metric"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .storagecast.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "", "Output format: json, projection, table, xlsx, png")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&a.timezone, "timezone", "", "IANA time zone for calendar days (default: Local)")

	rootCmd.AddCommand(
		newFetchCmd(a),
		newRenderCmd(a),
		newHorizonCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// initConfig loads configuration and sets up the logger.
func (a *app) initConfig(cmd *cobra.Command, extra map[string]interface{}) error {
	overrides := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("format") {
		overrides["output.format"] = a.format
	}
	if flags.Changed("output") {
		overrides["output.path"] = a.output
	}
	if flags.Changed("pretty") {
		overrides["output.pretty"] = a.pretty
	}
	if flags.Changed("timezone") {
		overrides["timezone"] = a.timezone
	}
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(a.cfgFile, overrides)
	if err != nil {
		return withCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}
	a.cfg = cfg

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		logLevel = slog.LevelInfo
	}
	if a.verbose {
		logLevel = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	a.logger.Debug("configuration loaded",
		"format", cfg.Output.Format,
		"timezone", cfg.Timezone,
		"locale", cfg.Locale,
		"anchor_policy", cfg.AnchorPolicy,
	)
	return nil
}

// printError prints a structured error message
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
	if hint := hintFor(err); hint != "" {
		color.New(color.FgCyan).Fprintf(w, "  Suggestion: %s\n", hint)
	}
}
