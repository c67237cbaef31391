package storagecast

import (
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// FieldNames names the metric field read from each result set.
type FieldNames struct {
	Total      string
	Used       string
	Prediction string // empty selects the single numeric field
}

// DefaultFieldNames returns the documented field names. Queries alias their
// metric accordingly, e.g. "SELECT latest(host.diskUsedBytes)/10e8 AS used".
func DefaultFieldNames() FieldNames {
	return FieldNames{
		Total:      "total",
		Used:       "used",
		Prediction: "prediction",
	}
}

// Input holds the three raw result sets and the forecast horizon.
type Input struct {
	Total       []models.Record
	Used        []models.Record
	Prediction  []models.Record
	Fields      FieldNames
	HorizonDays int
}

// Forecast normalizes the raw result sets and projects them.
func Forecast(in Input, opts Options) (*models.Projection, error) {
	total, err := Normalize("total", in.Total, in.Fields.Total)
	if err != nil {
		return nil, err
	}
	used, err := Normalize("used", in.Used, in.Fields.Used)
	if err != nil {
		return nil, err
	}
	prediction, err := PredictionValue(in.Prediction, in.Fields.Prediction)
	if err != nil {
		return nil, err
	}
	return Project(total, used, prediction, in.HorizonDays, opts)
}
