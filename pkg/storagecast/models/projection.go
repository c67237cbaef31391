package models

// Anchor describes the extrapolation starting point.
type Anchor struct {
	// Label is the calendar day of the last historical point.
	Label string `json:"label"`
	// TimestampSeconds is the time of the last historical point.
	TimestampSeconds int64 `json:"timestampSeconds"`
	// Base is the used value the forecast starts from.
	Base float64 `json:"base"`
	// CarriedFrom is the label the base was carried forward from, empty when
	// the last historical point had its own used value.
	CarriedFrom string `json:"carriedFrom,omitempty"`
}

// Projection is the unified history plus forecast sequence.
type Projection struct {
	// Points holds history (backbone order) followed by forecast days.
	Points []Point `json:"points"`
	// HistoryLen is the number of historical points at the head of Points.
	HistoryLen int `json:"historyLen"`
	// HorizonDays is the number of synthesized forecast points.
	HorizonDays int `json:"horizonDays"`
	// Target is the externally supplied prediction value.
	Target float64 `json:"target"`
	// Step is the constant per-day forecast increment (0 when HorizonDays is 0).
	Step float64 `json:"step"`
	// Anchor is the extrapolation starting point.
	Anchor Anchor `json:"anchor"`
	// Dropped lists used samples whose day is absent from the backbone.
	Dropped []TimeSeriesPoint `json:"dropped,omitempty"`
}

// History returns the historical portion of the projection.
func (p *Projection) History() []Point {
	return p.Points[:p.HistoryLen]
}

// Forecast returns the synthesized forecast portion of the projection.
func (p *Projection) Forecast() []Point {
	return p.Points[p.HistoryLen:]
}
