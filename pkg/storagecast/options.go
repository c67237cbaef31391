// Package storagecast merges total and used storage time series with a
// linear-regression target into one date-aligned history plus forecast
// sequence.
package storagecast

import (
	"fmt"
	"time"
)

// AnchorPolicy selects what happens when the last historical day has no used
// value.
type AnchorPolicy string

const (
	// AnchorCarryForward starts the forecast from the nearest earlier day that
	// has a used value.
	AnchorCarryForward AnchorPolicy = "carry-forward"
	// AnchorFail rejects the projection with ErrMissingAnchor.
	AnchorFail AnchorPolicy = "fail"
)

// MaxHorizonDays is the longest forecast Project accepts, about 100 years.
const MaxHorizonDays = 36500

// DefaultLabelLayout is the short US calendar-day layout (e.g. 10/19/2026).
const DefaultLabelLayout = "1/2/2006"

// Options configures projection behavior.
type Options struct {
	// Location is the time zone calendar days are computed in. Required.
	Location *time.Location
	// LabelLayout is the time layout of day labels. Defaults to DefaultLabelLayout.
	LabelLayout string
	// AnchorPolicy defaults to AnchorCarryForward.
	AnchorPolicy AnchorPolicy
}

// DefaultOptions returns default projection options in UTC.
func DefaultOptions() Options {
	return Options{
		Location:     time.UTC,
		LabelLayout:  DefaultLabelLayout,
		AnchorPolicy: AnchorCarryForward,
	}
}

// ParseAnchorPolicy parses a policy name. An empty name selects the default.
func ParseAnchorPolicy(s string) (AnchorPolicy, error) {
	switch AnchorPolicy(s) {
	case "", AnchorCarryForward:
		return AnchorCarryForward, nil
	case AnchorFail:
		return AnchorFail, nil
	default:
		return "", fmt.Errorf("%w: anchor policy %q (must be carry-forward or fail)", ErrConfiguration, s)
	}
}

func (o Options) layout() string {
	if o.LabelLayout == "" {
		return DefaultLabelLayout
	}
	return o.LabelLayout
}

func (o Options) validate() error {
	if o.Location == nil {
		return fmt.Errorf("%w: time zone is required", ErrConfiguration)
	}
	ref := time.Date(2001, time.February, 3, 12, 0, 0, 0, o.Location)
	if ref.Format(o.layout()) == ref.AddDate(0, 0, 1).Format(o.layout()) {
		return fmt.Errorf("%w: label layout %q does not distinguish calendar days", ErrConfiguration, o.layout())
	}
	_, err := ParseAnchorPolicy(string(o.AnchorPolicy))
	return err
}

// Label returns the calendar-day label of a Unix timestamp.
func (o Options) Label(secs int64) string {
	return time.Unix(secs, 0).In(o.Location).Format(o.layout())
}
