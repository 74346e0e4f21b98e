package core

import (
	"time"

	"github.com/databoard/databoard/internal/engine"
)

// ColumnInfo describes one column of an uploaded dataset for the UI.
type ColumnInfo struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`  // storage type: text, numeric, datetime
	Class string `json:"class"` // analysis role: numeric, categorical, datetime, excluded
}

// DateRange is the observed [min, max] of a datetime column.
type DateRange struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// SchemaInfo is everything a frontend needs to build its controls: the
// column list, the option set per categorical column, and default bounds.
type SchemaInfo struct {
	SessionID string       `json:"sessionId"`
	FileName  string       `json:"fileName"`
	Rows      int          `json:"rows"`
	Columns   []ColumnInfo `json:"columns"`

	// CategoricalOptions holds sorted distinct non-missing values per
	// filterable categorical column.
	CategoricalOptions map[string][]string `json:"categoricalOptions"`

	NumericColumns  []string             `json:"numericColumns"`
	DateColumns     []string             `json:"dateColumns"`
	ExcludedColumns []string             `json:"excludedColumns"`
	DateRanges      map[string]DateRange `json:"dateRanges"`
}

// Availability reports which panels the current dataset supports.
// A false flag is an empty UI slot, not an error.
type Availability struct {
	TimeSeries bool `json:"timeSeries"` // needs a date column and a metric
	Scatter    bool `json:"scatter"`    // needs two numeric columns
	Bar        bool `json:"bar"`        // needs a categorical column and a metric
	TopN       bool `json:"topN"`       // needs a categorical column and a metric
}

// KPIBlock is the headline metric summary over the filtered view.
type KPIBlock struct {
	Metric       string  `json:"metric"`
	Total        float64 `json:"total"`
	Average      float64 `json:"average"`
	TotalRecords int     `json:"totalRecords"`
}

// PreviewTable is a capped stringified slice of the filtered rows.
type PreviewTable struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"totalRows"` // before the preview cap
	Truncated bool       `json:"truncated"`
}

// Dashboard is the full render result for one interaction: a pure function
// of the session's dataset and the request's selections.
type Dashboard struct {
	KPIs         KPIBlock              `json:"kpis"`
	TopGroups    []engine.Group        `json:"topGroups"`
	TopDimension string                `json:"topDimension"`
	TimeSeries   []engine.TimePoint    `json:"timeSeries"`
	Bars         []engine.Group        `json:"bars"`
	BarDimension string                `json:"barDimension"`
	Scatter      []engine.ScatterPoint `json:"scatter"`
	Preview      PreviewTable          `json:"preview"`
	Availability Availability          `json:"availability"`
	FilteredRows int                   `json:"filteredRows"`
}
