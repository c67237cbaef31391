package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// SheetName is the worksheet holding the projected data and chart.
const SheetName = "Forecast"

// Workbook builds an xlsx file with the projection as a table (Date plus one
// column per chart series) and a native combo chart over it. The caller
// closes the file.
func Workbook(p *models.Projection, chart models.Chart) (*excelize.File, error) {
	if len(p.Points) == 0 {
		return nil, fmt.Errorf("no points to render")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeData(f, p, chart); err != nil {
		f.Close()
		return nil, err
	}
	if err := addChart(f, len(p.Points), chart); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteWorkbook writes the projection workbook to path.
func WriteWorkbook(path string, p *models.Projection, chart models.Chart) error {
	f, err := Workbook(p, chart)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeData(f *excelize.File, p *models.Projection, chart models.Chart) error {
	header := []interface{}{"Date"}
	for _, s := range chart.Series {
		header = append(header, s.Name)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, pt := range p.Points {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellStr(SheetName, cell, pt.Label); err != nil {
			return err
		}
		// Unknown values stay blank so the chart shows a gap.
		for j, s := range chart.Series {
			v := pt.Value(s.Key)
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+2, row)
			if err := f.SetCellFloat(SheetName, cell, *v, -1, 64); err != nil {
				return err
			}
		}
	}
	return nil
}

func addChart(f *excelize.File, rows int, chart models.Chart) error {
	categories := fmt.Sprintf("%s!$A$2:$A$%d", SheetName, rows+1)

	var areas, lines []excelize.ChartSeries
	for j, s := range chart.Series {
		col, _ := excelize.ColumnNumberToName(j + 2)
		series := excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", SheetName, col),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", SheetName, col, col, rows+1),
		}
		switch s.Kind {
		case models.KindLine:
			series.Line = excelize.ChartLine{Smooth: true, Width: 2}
			series.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.Color}}
			series.Marker = excelize.ChartMarker{Symbol: "none"}
			lines = append(lines, series)
		default:
			series.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.Color}}
			areas = append(areas, series)
		}
	}

	base := &excelize.Chart{
		Type:   excelize.Area,
		Series: areas,
		Title:  []excelize.RichTextRun{{Text: chart.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		YAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: chart.YAxisUnit}},
		},
		Dimension:    excelize.ChartDimension{Width: 960, Height: 480},
		ShowBlanksAs: "gap",
	}
	var combo []*excelize.Chart
	if len(lines) > 0 {
		combo = append(combo, &excelize.Chart{Type: excelize.Line, Series: lines})
	}
	if len(areas) == 0 {
		base.Type = excelize.Line
		base.Series = lines
		combo = nil
	}

	anchor, _ := excelize.CoordinatesToCellName(len(chart.Series)+3, 2)
	return f.AddChart(SheetName, anchor, base, combo...)
}
