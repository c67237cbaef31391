package models

// Series data keys of a projected Point.
const (
	KeyAvailable  = "available"
	KeyUsed       = "used"
	KeyPrediction = "prediction"
)

// Chart series kinds.
const (
	KindArea = "area"
	KindLine = "line"
)

// ChartSeries represents one overlaid series of the forecast chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// Key is the Point field plotted by the series (available, used, prediction).
	Key string `json:"key"`
	// Kind is the drawing kind (area, line).
	Kind string `json:"kind"`
	// Color is the RGB hex color without the leading '#'.
	Color string `json:"color"`
}

// Chart describes the forecast chart layout.
type Chart struct {
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// YAxisUnit is the unit label for the value axis.
	YAxisUnit string `json:"y_axis_unit,omitempty"`
	// Series is the list of series in drawing order.
	Series []ChartSeries `json:"series"`
}

// Value returns the field of p plotted under key.
func (p Point) Value(key string) *float64 {
	switch key {
	case KeyAvailable:
		return p.Available
	case KeyUsed:
		return p.Used
	case KeyPrediction:
		return p.Prediction
	}
	return nil
}
