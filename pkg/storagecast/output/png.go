package output

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// Default image size in pixels.
const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

// maxTicks bounds the number of date labels drawn on the x axis.
const maxTicks = 12

// WritePNG draws the projection as a PNG image. Points are placed by index
// on a category axis labeled with their dates.
func WritePNG(w io.Writer, p *models.Projection, layout models.Chart, width, height int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var series []chart.Series
	for _, s := range layout.Series {
		var xs, ys []float64
		for i, pt := range p.Points {
			if v := pt.Value(s.Key); v != nil {
				xs = append(xs, float64(i))
				ys = append(ys, *v)
			}
		}
		// A single value cannot span an x range.
		if len(xs) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(s),
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("no series with at least two points to draw")
	}

	ch := chart.Chart{
		Title:      layout.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Ticks: dateTicks(p.Points),
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(p.Points) - 1)},
		},
		YAxis: chart.YAxis{
			Name: layout.YAxisUnit,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

func seriesStyle(s models.ChartSeries) chart.Style {
	col := drawing.ColorFromHex(s.Color)
	st := chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
	if s.Kind == models.KindArea {
		st.FillColor = col.WithAlpha(96)
	}
	return st
}

// dateTicks labels at most maxTicks evenly spaced points.
func dateTicks(points []models.Point) []chart.Tick {
	every := (len(points) + maxTicks - 1) / maxTicks
	if every < 1 {
		every = 1
	}
	var ticks []chart.Tick
	for i := 0; i < len(points); i += every {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: points[i].Label})
	}
	return ticks
}
