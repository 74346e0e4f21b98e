package engine

// sample.go down-samples large filtered views for scatter rendering only.
// KPIs, exports, and the other charts always see the full filtered view.

import (
	"math/rand"
	"sort"

	"github.com/databoard/databoard/internal/dataset"
)

// DefaultSampleLimit caps the number of scatter points rendered.
const DefaultSampleLimit = 1000

// DefaultSampleSeed makes repeated renders of the same view identical.
const DefaultSampleSeed = 1

// ScatterPoint is one rendered point; Label carries optional hover text.
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// SampleRows picks which view rows to plot. Views at or under limit keep
// every row. Larger views get a fixed-seed random sample of exactly limit
// rows, returned in ascending row order so the plot is reproducible.
func SampleRows(n, limit int, seed int64) []int {
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	if n <= limit {
		return rows
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	rows = rows[:limit]
	sort.Ints(rows)
	return rows
}

// ScatterSample builds the scatter payload for two numeric columns, sampling
// when the view exceeds limit. Rows where either coordinate is missing are
// dropped after sampling, matching how a plot treats holes.
func ScatterSample(v View, xName, yName, hoverName string, limit int, seed int64) []ScatterPoint {
	xCol, ok := v.Data.Column(xName)
	if !ok || xCol.Kind != dataset.KindNumeric {
		return nil
	}
	yCol, ok := v.Data.Column(yName)
	if !ok || yCol.Kind != dataset.KindNumeric {
		return nil
	}
	var hoverCol *dataset.Column
	if hoverName != "" {
		if c, ok := v.Data.Column(hoverName); ok && c.Kind == dataset.KindText {
			hoverCol = c
		}
	}

	rows := SampleRows(v.Len(), limit, seed)
	points := make([]ScatterPoint, 0, len(rows))
	for _, row := range rows {
		x, okX := v.Float(row, xCol)
		y, okY := v.Float(row, yCol)
		if !okX || !okY {
			continue
		}
		p := ScatterPoint{X: x, Y: y}
		if hoverCol != nil {
			p.Label, _ = v.String(row, hoverCol)
		}
		points = append(points, p)
	}
	return points
}
