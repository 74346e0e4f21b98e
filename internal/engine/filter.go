package engine

// filter.go applies the user's categorical and date-range selections.
//
// Filters compose by conjunction and are always evaluated against the base
// dataset in a single pass, never cumulatively against a prior filtered
// output. A selection equal to the full observed value set is a no-op, so
// default widget state reproduces the unfiltered view exactly.

import (
	"time"

	"github.com/databoard/databoard/internal/dataset"
)

// ApplyFilters returns the view of rows passing all active selections.
// Columns referenced by the selections must exist; Validate catches the rest.
func ApplyFilters(d *dataset.Dataset, sel Selections) View {
	type catFilter struct {
		col     *dataset.Column
		allowed map[string]bool
	}

	var cats []catFilter
	for name, values := range sel.Categorical {
		col, ok := d.Column(name)
		if !ok || values == nil {
			continue
		}
		set := make(map[string]bool, len(values))
		for _, v := range values {
			set[v] = true
		}
		// Full default selection restricts nothing.
		if coversAllObserved(col, set) {
			continue
		}
		cats = append(cats, catFilter{col: col, allowed: set})
	}

	var dateCol *dataset.Column
	if sel.DateColumn != "" && (sel.DateStart != nil || sel.DateEnd != nil) {
		if col, ok := d.Column(sel.DateColumn); ok && col.Kind == dataset.KindDatetime {
			dateCol = col
		}
	}

	if len(cats) == 0 && dateCol == nil {
		return FullView(d)
	}

	indices := make([]int, 0, d.Rows())
rows:
	for i := 0; i < d.Rows(); i++ {
		for _, f := range cats {
			// Missing values are never filterable options and never match.
			if f.col.Missing[i] || !f.allowed[f.col.Strings[i]] {
				continue rows
			}
		}
		if dateCol != nil && !dateInRange(dateCol, i, sel.DateStart, sel.DateEnd) {
			continue rows
		}
		indices = append(indices, i)
	}

	return View{Data: d, Indices: indices}
}

// coversAllObserved reports whether a selection includes every non-missing
// value the column contains.
func coversAllObserved(col *dataset.Column, set map[string]bool) bool {
	for i, v := range col.Strings {
		if col.Missing[i] {
			continue
		}
		if !set[v] {
			return false
		}
	}
	return true
}

// dateInRange checks an inclusive [start, end] bound at day granularity.
// Rows with a missing date fail any active date filter.
func dateInRange(col *dataset.Column, i int, start, end *time.Time) bool {
	if col.Missing[i] {
		return false
	}
	t := truncateDay(col.Times[i])
	if start != nil && t.Before(truncateDay(*start)) {
		return false
	}
	if end != nil && t.After(truncateDay(*end)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CategoricalOptions returns the filter option list for a column: sorted
// distinct non-missing values. Missing never appears as its own option.
func CategoricalOptions(col *dataset.Column) []string {
	return col.DistinctStrings()
}
