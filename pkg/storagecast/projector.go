package storagecast

import (
	"fmt"
	"math"
	"time"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// Project merges the total and used series into one day-labeled history and
// appends horizonDays linearly extrapolated forecast points.
//
// Total drives the history: one output point per total sample, in input
// order, with Available unset for empty samples. Used samples are attached by
// calendar-day label; empty ones are ignored and those without a matching
// day are reported in Projection.Dropped. The forecast starts at the
// last historical used value and reaches prediction after horizonDays days.
//
// Both series are expected in ascending time order. All errors are returned
// before any output is built.
func Project(total, used []models.Sample, prediction float64, horizonDays int, opts Options) (*models.Projection, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if horizonDays < 0 || horizonDays > MaxHorizonDays {
		return nil, fmt.Errorf("%w: horizon %d days outside [0, %d]", ErrConfiguration, horizonDays, MaxHorizonDays)
	}
	if math.IsNaN(prediction) || math.IsInf(prediction, 0) {
		return nil, fmt.Errorf("%w: prediction value %v is not finite", ErrMissingPrediction, prediction)
	}
	if len(total) == 0 {
		return nil, NewSeriesError("total", -1, ErrEmptyInput)
	}

	backbone, lerr := label(total, opts)
	if lerr != nil {
		return nil, NewSeriesError("total", lerr.index, lerr.err)
	}
	usedPoints, _ := label(present(used), opts)

	inBackbone := make(map[string]struct{}, len(backbone))
	for _, b := range backbone {
		inBackbone[b.Label] = struct{}{}
	}

	// First used sample of a backbone day wins, the rest are dropped.
	usedByLabel := make(map[string]float64, len(usedPoints))
	var dropped []models.TimeSeriesPoint
	for _, p := range usedPoints {
		_, known := inBackbone[p.Label]
		_, taken := usedByLabel[p.Label]
		if !known || taken {
			dropped = append(dropped, p)
			continue
		}
		usedByLabel[p.Label] = p.Value
	}

	history := make([]models.Point, len(backbone))
	for i, b := range backbone {
		history[i] = models.Point{
			Label:            b.Label,
			TimestampSeconds: b.TimestampSeconds,
		}
		if !total[i].Empty {
			history[i].Available = models.Float(b.Value)
		}
		if v, ok := usedByLabel[b.Label]; ok {
			history[i].Used = models.Float(v)
		}
	}

	anchor, err := selectAnchor(history, opts.AnchorPolicy)
	if err != nil {
		return nil, err
	}

	var step float64
	if horizonDays > 0 {
		step = (prediction - anchor.Base) / float64(horizonDays)
	}

	points := make([]models.Point, 0, len(history)+horizonDays)
	points = append(points, history...)
	points[len(points)-1].Prediction = models.Float(anchor.Base)

	start := time.Unix(anchor.TimestampSeconds, 0).In(opts.Location)
	for i := 1; i <= horizonDays; i++ {
		day := start.AddDate(0, 0, i)
		points = append(points, models.Point{
			Label:            day.Format(opts.layout()),
			TimestampSeconds: day.Unix(),
			Prediction:       models.Float(anchor.Base + step*float64(i)),
		})
	}

	return &models.Projection{
		Points:      points,
		HistoryLen:  len(history),
		HorizonDays: horizonDays,
		Target:      prediction,
		Step:        step,
		Anchor:      anchor,
		Dropped:     dropped,
	}, nil
}

// present returns the samples that carry a value.
func present(samples []models.Sample) []models.Sample {
	out := make([]models.Sample, 0, len(samples))
	for _, s := range samples {
		if !s.Empty {
			out = append(out, s)
		}
	}
	return out
}

type labelError struct {
	index int
	err   error
}

// label converts samples into day-labeled points, rejecting two samples on
// the same day.
func label(samples []models.Sample, opts Options) ([]models.TimeSeriesPoint, *labelError) {
	points := make([]models.TimeSeriesPoint, len(samples))
	seen := make(map[string]int, len(samples))
	var dup *labelError
	for i, s := range samples {
		l := opts.Label(s.TimestampSeconds)
		if first, ok := seen[l]; ok {
			if dup == nil {
				dup = &labelError{index: i, err: fmt.Errorf("%w: %s (also at [%d])", ErrDuplicateLabel, l, first)}
			}
		} else {
			seen[l] = i
		}
		points[i] = models.TimeSeriesPoint{
			TimestampSeconds: s.TimestampSeconds,
			Label:            l,
			Value:            s.Value,
		}
	}
	return points, dup
}

func selectAnchor(history []models.Point, policy AnchorPolicy) (models.Anchor, error) {
	last := history[len(history)-1]
	anchor := models.Anchor{
		Label:            last.Label,
		TimestampSeconds: last.TimestampSeconds,
	}
	if last.Used != nil {
		anchor.Base = *last.Used
		return anchor, nil
	}
	if policy == AnchorFail {
		return anchor, NewSeriesError("used", -1, fmt.Errorf("%w: %s", ErrMissingAnchor, last.Label))
	}
	for i := len(history) - 2; i >= 0; i-- {
		if history[i].Used != nil {
			anchor.Base = *history[i].Used
			anchor.CarriedFrom = history[i].Label
			return anchor, nil
		}
	}
	return anchor, NewSeriesError("used", -1, fmt.Errorf("%w: %s", ErrMissingAnchor, last.Label))
}
