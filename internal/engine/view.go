// Package engine implements the filtering and aggregation pipeline that
// powers the dashboard: categorical/date filters over a loaded dataset,
// KPI computation, top-N group sums, month-end resampling, and
// fixed-seed scatter sampling. Every operation is a synchronous, deterministic
// transform; the engine never mutates the dataset it reads.
package engine

import (
	"time"

	"github.com/databoard/databoard/internal/dataset"
)

// View is a filtered subset of a dataset: row indices into the base data,
// no cell copies. The zero-filter view covers every row.
type View struct {
	Data    *dataset.Dataset
	Indices []int
}

// FullView returns a view over every row of the dataset.
func FullView(d *dataset.Dataset) View {
	idx := make([]int, d.Rows())
	for i := range idx {
		idx[i] = i
	}
	return View{Data: d, Indices: idx}
}

// Len returns the number of rows in the view.
func (v View) Len() int { return len(v.Indices) }

// Float reads a numeric cell through the view. ok is false for missing cells
// or rows outside the view.
func (v View) Float(row int, col *dataset.Column) (float64, bool) {
	if row < 0 || row >= len(v.Indices) {
		return 0, false
	}
	i := v.Indices[row]
	if col.Missing[i] {
		return 0, false
	}
	return col.Floats[i], true
}

// String reads a text cell through the view.
func (v View) String(row int, col *dataset.Column) (string, bool) {
	if row < 0 || row >= len(v.Indices) {
		return "", false
	}
	i := v.Indices[row]
	if col.Missing[i] {
		return "", false
	}
	return col.Strings[i], true
}

// Time reads a datetime cell through the view.
func (v View) Time(row int, col *dataset.Column) (time.Time, bool) {
	if row < 0 || row >= len(v.Indices) {
		return time.Time{}, false
	}
	i := v.Indices[row]
	if col.Missing[i] {
		return time.Time{}, false
	}
	return col.Times[i], true
}
