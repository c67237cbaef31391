package models

// Sample is a timestamped metric value selected from a Record.
type Sample struct {
	// TimestampSeconds is the sample time as Unix seconds.
	TimestampSeconds int64 `json:"timestampSeconds"`
	// Value is the metric value.
	Value float64 `json:"value"`
	// Empty marks a bucket without a value. Value is zero.
	Empty bool `json:"empty,omitempty"`
}

// TimeSeriesPoint is a Sample with its calendar-day label.
type TimeSeriesPoint struct {
	// TimestampSeconds is the sample time as Unix seconds.
	TimestampSeconds int64 `json:"timestampSeconds"`
	// Label is the calendar day of TimestampSeconds. It is the join key between series.
	Label string `json:"label"`
	// Value is the metric value.
	Value float64 `json:"value"`
}

// Point is one element of a projected series. Optional fields are nil when
// unknown for the point's day.
type Point struct {
	// Label is the calendar-day category shared by all overlaid series.
	Label string `json:"label"`
	// TimestampSeconds is the backbone sample time, or the synthesized day for forecast points.
	TimestampSeconds int64 `json:"timestampSeconds"`
	// Available is the total capacity (historical points only).
	Available *float64 `json:"available,omitempty"`
	// Used is the used capacity (historical points with a same-day used sample).
	Used *float64 `json:"used,omitempty"`
	// Prediction is set on the anchor point and on every forecast point.
	Prediction *float64 `json:"prediction,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
