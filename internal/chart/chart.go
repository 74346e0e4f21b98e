// Package chart renders dashboard aggregates to PNG images with go-chart.
// Each renderer is a pure function from engine results to bytes; callers
// decide availability (no date column, fewer than two numeric columns) before
// asking for an image.
package chart

import (
	"bytes"
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/databoard/databoard/internal/engine"
)

// Default render dimensions.
const (
	Width  = 900
	Height = 420
)

// TopNBar renders the top-N table as a bar chart, ascending left to right
// so the biggest bar sits on the right.
func TopNBar(title string, groups []engine.Group) ([]byte, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no groups to chart")
	}

	asc := engine.SortGroupsAscending(groups)
	bars := make([]gochart.Value, len(asc))
	for i, g := range asc {
		bars[i] = gochart.Value{Label: g.Label, Value: g.Value}
	}

	graph := gochart.BarChart{
		Title:    title,
		Width:    Width,
		Height:   Height,
		BarWidth: 60,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Bar renders a full group-by as a vertical bar chart, ascending by value.
func Bar(title string, groups []engine.Group) ([]byte, error) {
	return TopNBar(title, groups)
}

// TimeSeries renders month-end resampled sums as a line with markers.
func TimeSeries(title string, points []engine.TimePoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 periods to chart a series, have %d", len(points))
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Period
		ys[i] = p.Value
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  Width,
		Height: Height,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: 2,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render time series: %w", err)
	}
	return buf.Bytes(), nil
}

// Scatter renders sampled points with dots only, no connecting stroke.
func Scatter(title, xLabel, yLabel string, points []engine.ScatterPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 points to chart a scatter, have %d", len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  Width,
		Height: Height,
		XAxis:  gochart.XAxis{Name: xLabel},
		YAxis:  gochart.YAxis{Name: yLabel},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter: %w", err)
	}
	return buf.Bytes(), nil
}
