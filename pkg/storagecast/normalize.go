package storagecast

import (
	"fmt"
	"math"
	"sort"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// Normalize selects the named metric field from each record.
//
// Every record yields one sample. Records without the field (empty
// buckets) yield a sample marked Empty. A non-empty series in which no record
// carries the field is rejected with ErrMissingField, since that means the
// field name does not match the query.
func Normalize(series string, records []models.Record, field string) ([]models.Sample, error) {
	samples := make([]models.Sample, len(records))
	found := false
	for i, r := range records {
		v, ok := r.Value(field)
		samples[i] = models.Sample{
			TimestampSeconds: r.BeginTimeSeconds,
			Value:            v,
			Empty:            !ok,
		}
		found = found || ok
	}
	if len(records) > 0 && !found {
		return nil, NewSeriesError(series, -1, fmt.Errorf("%w: %q (have %v)", ErrMissingField, field, fieldNames(records[0])))
	}
	return samples, nil
}

// PredictionValue extracts the scalar prediction from its result set.
//
// The set must hold exactly one record. An empty field name selects the
// record's only numeric field.
func PredictionValue(records []models.Record, field string) (float64, error) {
	if len(records) != 1 {
		return 0, NewSeriesError("prediction", -1, fmt.Errorf("%w: got %d results, want 1", ErrMissingPrediction, len(records)))
	}
	r := records[0]

	if field == "" {
		if len(r.Fields) != 1 {
			return 0, NewSeriesError("prediction", 0, fmt.Errorf("%w: ambiguous result fields %v", ErrMissingPrediction, fieldNames(r)))
		}
		for name := range r.Fields {
			field = name
		}
	}

	v, ok := r.Value(field)
	if !ok {
		return 0, NewSeriesError("prediction", 0, fmt.Errorf("%w: field %q not in %v", ErrMissingPrediction, field, fieldNames(r)))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewSeriesError("prediction", 0, fmt.Errorf("%w: value %v is not finite", ErrMissingPrediction, v))
	}
	return v, nil
}

func fieldNames(r models.Record) []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
