package engine

// aggregate.go computes the dashboard's summary results over a filtered view:
// KPIs, grouped sums (top-N and bar), and month-end resampled time series.

import (
	"sort"
	"time"

	"github.com/databoard/databoard/internal/dataset"
)

// DefaultTopN is how many groups the top-N table keeps.
const DefaultTopN = 5

// KPI is the scalar summary block shown above the charts.
type KPI struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Group is one aggregated bucket of a group-by.
type Group struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// TimePoint is one month-end bucket of the resampled series.
type TimePoint struct {
	Period time.Time `json:"period"`
	Value  float64   `json:"value"`
}

// ComputeKPI returns sum, mean, and row count of the metric over the view.
// With no metric column the sums are zero and only the count is meaningful.
// The mean of zero rows is zero.
func ComputeKPI(v View, metric string) KPI {
	kpi := KPI{Count: v.Len()}
	if metric == "" {
		return kpi
	}
	col, ok := v.Data.Column(metric)
	if !ok || col.Kind != dataset.KindNumeric {
		return kpi
	}

	n := 0
	for row := 0; row < v.Len(); row++ {
		if f, ok := v.Float(row, col); ok {
			kpi.Total += f
			n++
		}
	}
	if n > 0 {
		kpi.Average = kpi.Total / float64(n)
	}
	return kpi
}

// GroupSum groups the view by a categorical column and sums the metric per
// group. Groups appear in first-occurrence order; rows with a missing group
// value are skipped.
func GroupSum(v View, dimension, metric string) []Group {
	dimCol, ok := v.Data.Column(dimension)
	if !ok || dimCol.Kind != dataset.KindText {
		return nil
	}
	var metCol *dataset.Column
	if metric != "" {
		if c, ok := v.Data.Column(metric); ok && c.Kind == dataset.KindNumeric {
			metCol = c
		}
	}

	index := make(map[string]int)
	var groups []Group
	for row := 0; row < v.Len(); row++ {
		label, ok := v.String(row, dimCol)
		if !ok {
			continue
		}
		gi, seen := index[label]
		if !seen {
			gi = len(groups)
			index[label] = gi
			groups = append(groups, Group{Label: label})
		}
		groups[gi].Count++
		if metCol != nil {
			if f, ok := v.Float(row, metCol); ok {
				groups[gi].Value += f
			}
		}
	}
	return groups
}

// TopN sorts groups by value descending and keeps the first n. The sort is
// stable, so ties retain first-occurrence order.
func TopN(groups []Group, n int) []Group {
	if n <= 0 {
		n = DefaultTopN
	}
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// SortGroupsAscending orders groups by value ascending (bar chart order).
func SortGroupsAscending(groups []Group) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// ResampleMonthlySum buckets rows by calendar month-end and sums the metric
// per bucket, returned in chronological order. Rows with a missing date are
// skipped.
func ResampleMonthlySum(v View, dateColumn, metric string) []TimePoint {
	dateCol, ok := v.Data.Column(dateColumn)
	if !ok || dateCol.Kind != dataset.KindDatetime {
		return nil
	}
	var metCol *dataset.Column
	if metric != "" {
		if c, ok := v.Data.Column(metric); ok && c.Kind == dataset.KindNumeric {
			metCol = c
		}
	}

	sums := make(map[time.Time]float64)
	for row := 0; row < v.Len(); row++ {
		t, ok := v.Time(row, dateCol)
		if !ok {
			continue
		}
		period := monthEnd(t)
		val := 0.0
		if metCol != nil {
			if f, ok := v.Float(row, metCol); ok {
				val = f
			}
		}
		sums[period] += val
	}

	points := make([]TimePoint, 0, len(sums))
	for period, value := range sums {
		points = append(points, TimePoint{Period: period, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period.Before(points[j].Period) })
	return points
}

// monthEnd returns the last day of t's calendar month at midnight UTC.
func monthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
