// Package output renders a projection as JSON, a terminal table, an xlsx
// workbook with a native chart, or a PNG image.
package output

import (
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// DefaultChart returns the storage forecast chart: two areas for available
// and used capacity overlaid by the forecast line.
func DefaultChart() models.Chart {
	return models.Chart{
		Title:     "Storage usage forecast",
		YAxisUnit: "GB",
		Series: []models.ChartSeries{
			{Name: "Available Storage", Key: models.KeyAvailable, Kind: models.KindArea, Color: "038CFC"},
			{Name: "Actuals", Key: models.KeyUsed, Kind: models.KindArea, Color: "89CFF0"},
			{Name: "Forecast", Key: models.KeyPrediction, Kind: models.KindLine, Color: "FF7300"},
		},
	}
}
