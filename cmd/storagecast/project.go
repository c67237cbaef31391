package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/internal/config"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/nrql"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/output"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/source"
)

// horizonDays returns the --days flag when set, otherwise the horizon in the
// prediction query.
func horizonDays(days int, predictionQuery string) (int, error) {
	if days >= 0 {
		return days, nil
	}
	if predictionQuery == "" {
		return 0, withCode(ExitConfigError, fmt.Errorf("%w: no --days and no prediction query to read the horizon from", storagecast.ErrConfiguration))
	}
	n, err := nrql.HorizonDays(predictionQuery)
	if err != nil {
		return 0, withCode(ExitConfigError, fmt.Errorf("prediction query: %w", err))
	}
	return n, nil
}

// project runs the forecast over raw results and writes it out.
func (a *app) project(cmd *cobra.Command, res *source.Results, days int) error {
	opts, err := a.cfg.ProjectOptions()
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	p, err := storagecast.Forecast(storagecast.Input{
		Total:       res.Total,
		Used:        res.Used,
		Prediction:  res.Prediction,
		Fields:      a.cfg.FieldNames(),
		HorizonDays: days,
	}, opts)
	if err != nil {
		return fmt.Errorf("projecting forecast: %w", err)
	}

	if len(p.Dropped) > 0 {
		a.logger.Warn("used samples without a matching total day were dropped",
			"count", len(p.Dropped),
			"first", p.Dropped[0].Label,
		)
	}
	a.logger.Debug("forecast projected",
		"history", p.HistoryLen,
		"horizon_days", p.HorizonDays,
		"anchor", p.Anchor.Label,
		"base", p.Anchor.Base,
		"step", p.Step,
	)
	if p.Anchor.CarriedFrom != "" {
		a.logger.Info("forecast anchor carried forward", "from", p.Anchor.CarriedFrom, "to", p.Anchor.Label)
	}

	return emit(cmd.OutOrStdout(), a.cfg, p)
}

// emit writes the projection in the configured format to the configured
// path, or to w when no path is set. Output is rendered completely before
// the file is created.
func emit(w io.Writer, cfg *config.Config, p *models.Projection) error {
	out := cfg.Output
	chart := output.DefaultChart()

	if out.Format == config.FormatXLSX && out.Path != "" {
		if err := output.WriteWorkbook(out.Path, p, chart); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := render(&buf, cfg, p, chart); err != nil {
		return err
	}

	if out.Path == "" {
		_, err := w.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(out.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func render(w io.Writer, cfg *config.Config, p *models.Projection, chart models.Chart) error {
	out := cfg.Output
	switch out.Format {
	case config.FormatTable:
		return output.WriteTable(w, p, chart, output.TableOptions{
			Locale: cfg.Tag(),
			Colors: out.Colors && out.Path == "",
		})
	case config.FormatXLSX:
		book, err := output.Workbook(p, chart)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
		defer book.Close()
		return book.Write(w)
	case config.FormatPNG:
		return output.WritePNG(w, p, chart, out.Width, out.Height)
	case config.FormatProjection:
		data, err := output.ProjectionToJSON(p, out.Pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		data, err := output.ToJSON(p, out.Pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
