package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// TableOptions configures WriteTable.
type TableOptions struct {
	// Locale selects number formatting. Defaults to en-US.
	Locale language.Tag
	// Colors highlights forecast rows when the terminal supports it.
	Colors bool
	// Decimals is the number of fraction digits shown. Defaults to 2.
	Decimals int
}

// WriteTable renders the projection as an aligned text table with one row
// per point.
func WriteTable(w io.Writer, p *models.Projection, chart models.Chart, opts TableOptions) error {
	if opts.Locale == language.Und {
		opts.Locale = language.AmericanEnglish
	}
	if opts.Decimals <= 0 {
		opts.Decimals = 2
	}
	printer := message.NewPrinter(opts.Locale)
	format := fmt.Sprintf("%%.%df", opts.Decimals)
	forecast := color.New(color.FgHiYellow)

	header := []string{"Date"}
	for _, s := range chart.Series {
		name := s.Name
		if chart.YAxisUnit != "" {
			name += " (" + chart.YAxisUnit + ")"
		}
		header = append(header, name)
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignRight},
			},
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.On},
			},
		}),
	)
	table.Header(header)

	rows := make([][]string, 0, len(p.Points))
	for i, pt := range p.Points {
		row := []string{pt.Label}
		for _, s := range chart.Series {
			v := pt.Value(s.Key)
			if v == nil {
				row = append(row, "")
				continue
			}
			row = append(row, printer.Sprintf(format, *v))
		}
		if opts.Colors && i >= p.HistoryLen {
			for j := range row {
				row[j] = forecast.Sprint(row[j])
			}
		}
		rows = append(rows, row)
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
