package storagecast

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates an invalid projection parameter such as a
// negative horizon or a missing time zone.
var ErrConfiguration = errors.New("invalid configuration")

// ErrEmptyInput indicates the total series has no points, so there is no
// extrapolation anchor.
var ErrEmptyInput = errors.New("empty total series")

// ErrMissingPrediction indicates the prediction result set is not exactly one
// finite scalar.
var ErrMissingPrediction = errors.New("missing prediction value")

// ErrMissingAnchor indicates no used value is available for the last
// historical day.
var ErrMissingAnchor = errors.New("no used value at forecast anchor")

// ErrDuplicateLabel indicates two samples of one series fall on the same
// calendar day.
var ErrDuplicateLabel = errors.New("duplicate calendar day")

// ErrMissingField indicates no record of a series carries the requested
// metric field.
var ErrMissingField = errors.New("metric field not found")

// SeriesError represents an error tied to one input series.
type SeriesError struct {
	Series string // "total", "used", "prediction"
	Index  int    // offending element, -1 when not tied to one element
	Err    error
}

func (e *SeriesError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s series: %v", e.Series, e.Err)
	}
	return fmt.Sprintf("%s series [%d]: %v", e.Series, e.Index, e.Err)
}

func (e *SeriesError) Unwrap() error {
	return e.Err
}

// NewSeriesError creates a new SeriesError.
func NewSeriesError(series string, index int, err error) *SeriesError {
	return &SeriesError{
		Series: series,
		Index:  index,
		Err:    err,
	}
}
