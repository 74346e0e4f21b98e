// Package dataset defines the in-memory tabular model shared by the loader,
// filter engine, and exporter. A Dataset is built once per upload and never
// mutated afterwards; filtering produces row-index views over it.
package dataset

import (
	"sort"
	"time"
)

// Kind is the storage type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindDatetime
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDatetime:
		return "datetime"
	default:
		return "text"
	}
}

// Column holds one named column of typed values. Exactly one of Floats,
// Strings, or Times is populated, matching Kind. Missing marks cells that
// were empty or failed coercion; its length always equals the row count.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Times   []time.Time
	Missing []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.Missing) }

// DistinctStrings returns the sorted set of non-missing values.
// Only meaningful for text columns.
func (c *Column) DistinctStrings() []string {
	seen := make(map[string]bool)
	var out []string
	for i, v := range c.Strings {
		if c.Missing[i] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DistinctCount returns the number of distinct non-missing values in a text
// column. Used by the classifier's cardinality cap.
func (c *Column) DistinctCount() int {
	seen := make(map[string]bool)
	for i, v := range c.Strings {
		if !c.Missing[i] {
			seen[v] = true
		}
	}
	return len(seen)
}

// TimeBounds returns the observed [min, max] of a datetime column and whether
// any non-missing value exists.
func (c *Column) TimeBounds() (min, max time.Time, ok bool) {
	for i, t := range c.Times {
		if c.Missing[i] {
			continue
		}
		if !ok {
			min, max, ok = t, t, true
			continue
		}
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return min, max, ok
}

// Dataset is an ordered collection of equally sized columns.
type Dataset struct {
	cols   []*Column
	byName map[string]int
	rows   int
}

// New assembles a Dataset from columns. Column order is preserved; it is the
// order uploads were parsed in and the order exports are written in.
func New(cols []*Column) *Dataset {
	d := &Dataset{
		cols:   cols,
		byName: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		d.byName[c.Name] = i
		if c.Len() > d.rows {
			d.rows = c.Len()
		}
	}
	return d
}

// Rows returns the row count.
func (d *Dataset) Rows() int { return d.rows }

// Columns returns the columns in dataset order.
func (d *Dataset) Columns() []*Column { return d.cols }

// Names returns the column names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by normalized name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return d.cols[i], true
}
