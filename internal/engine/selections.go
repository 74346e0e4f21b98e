package engine

import (
	"fmt"
	"time"

	"github.com/databoard/databoard/internal/dataset"
)

// Selections carries every user-chosen widget value for one interaction.
// The dashboard is a pure function of (dataset, selections); nothing here is
// stateful.
type Selections struct {
	// Categorical maps column name to the allowed value set. A nil or absent
	// entry means "all observed values" (no restriction). A set covering all
	// observed values is also a no-op.
	Categorical map[string][]string

	// DateColumn plus inclusive [DateStart, DateEnd]. Nil bounds are open.
	DateColumn string
	DateStart  *time.Time
	DateEnd    *time.Time

	// Metric is the numeric column driving KPIs and charts.
	Metric string

	// TopDimension is the categorical column for the top-N table.
	TopDimension string

	// BarDimension is the categorical column for the bar chart.
	BarDimension string

	// ScatterX, ScatterY are numeric columns for the scatter chart.
	ScatterX string
	ScatterY string
}

// ApplyDefaults fills empty selections from the dataset the way the UI
// defaults its widgets: first numeric column as metric, first datetime
// column as date column, first categorical column for top-N and bar.
func (s *Selections) ApplyDefaults(d *dataset.Dataset, part dataset.Partition) {
	if s.Metric == "" && len(part.Numeric) > 0 {
		s.Metric = part.Numeric[0]
	}
	if s.DateColumn == "" && len(part.Datetime) > 0 {
		s.DateColumn = part.Datetime[0]
	}
	if s.TopDimension == "" && len(part.Categorical) > 0 {
		s.TopDimension = part.Categorical[0]
	}
	if s.BarDimension == "" && len(part.Categorical) > 0 {
		s.BarDimension = part.Categorical[0]
	}
	if s.ScatterX == "" && len(part.Numeric) > 0 {
		s.ScatterX = part.Numeric[0]
	}
	if s.ScatterY == "" && len(part.Numeric) > 1 {
		s.ScatterY = part.Numeric[1]
	}
}

// Validate checks every referenced column against the dataset and its
// partition. It returns the first problem found.
func (s *Selections) Validate(d *dataset.Dataset, part dataset.Partition) error {
	categorical := toSet(part.Categorical)
	numeric := toSet(part.Numeric)
	datetime := toSet(part.Datetime)

	for col := range s.Categorical {
		if !categorical[col] {
			return fmt.Errorf("unknown column %q: not a filterable categorical column", col)
		}
	}
	if s.DateColumn != "" && !datetime[s.DateColumn] {
		return fmt.Errorf("unknown column %q: not a date column", s.DateColumn)
	}
	if s.Metric != "" && !numeric[s.Metric] {
		return fmt.Errorf("invalid metric %q: not a numeric column", s.Metric)
	}
	if s.TopDimension != "" && !categorical[s.TopDimension] {
		return fmt.Errorf("unknown column %q: not a filterable categorical column", s.TopDimension)
	}
	if s.BarDimension != "" && !categorical[s.BarDimension] {
		return fmt.Errorf("unknown column %q: not a filterable categorical column", s.BarDimension)
	}
	for _, axis := range []string{s.ScatterX, s.ScatterY} {
		if axis != "" && !numeric[axis] {
			return fmt.Errorf("invalid metric %q: not a numeric column", axis)
		}
	}
	return nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
