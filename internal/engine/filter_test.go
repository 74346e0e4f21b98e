package engine

import (
	"testing"
	"time"

	"github.com/databoard/databoard/internal/dataset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testDataset builds a small retail-style dataset:
//
//	region    sales   order_date
//	East      100     2024-01-05
//	West      250     2024-01-20
//	East      50      2024-02-10
//	(miss)    75      2024-02-18
//	South     125     (miss)
func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	region := &dataset.Column{
		Name:    "region",
		Kind:    dataset.KindText,
		Strings: []string{"East", "West", "East", "", "South"},
		Missing: []bool{false, false, false, true, false},
	}
	sales := &dataset.Column{
		Name:    "sales",
		Kind:    dataset.KindNumeric,
		Floats:  []float64{100, 250, 50, 75, 125},
		Missing: make([]bool, 5),
	}
	orderDate := &dataset.Column{
		Name: "order_date",
		Kind: dataset.KindDatetime,
		Times: []time.Time{
			day(2024, 1, 5), day(2024, 1, 20), day(2024, 2, 10), day(2024, 2, 18), {},
		},
		Missing: []bool{false, false, false, false, true},
	}
	return dataset.New([]*dataset.Column{region, sales, orderDate})
}

func TestApplyFilters_NoSelections(t *testing.T) {
	d := testDataset(t)
	v := ApplyFilters(d, Selections{})
	if v.Len() != d.Rows() {
		t.Errorf("unfiltered view has %d rows, want %d", v.Len(), d.Rows())
	}
}

func TestApplyFilters_FullDefaultSetIsNoOp(t *testing.T) {
	d := testDataset(t)
	region, _ := d.Column("region")

	v := ApplyFilters(d, Selections{
		Categorical: map[string][]string{"region": region.DistinctStrings()},
	})
	if v.Len() != d.Rows() {
		t.Errorf("full default selection filtered to %d rows, want %d", v.Len(), d.Rows())
	}
}

func TestApplyFilters_StrictSubset(t *testing.T) {
	d := testDataset(t)
	v := ApplyFilters(d, Selections{
		Categorical: map[string][]string{"region": {"East"}},
	})

	if v.Len() != 2 {
		t.Fatalf("view has %d rows, want 2", v.Len())
	}
	if v.Indices[0] != 0 || v.Indices[1] != 2 {
		t.Errorf("indices = %v, want [0 2]", v.Indices)
	}
}

func TestApplyFilters_MissingValuesNeverMatch(t *testing.T) {
	d := testDataset(t)
	// Selecting a strict subset must drop the missing-region row even though
	// "" is not an option.
	v := ApplyFilters(d, Selections{
		Categorical: map[string][]string{"region": {"East", "West", "South"}},
	})
	for _, i := range v.Indices {
		if i == 3 {
			t.Error("row with missing region should not pass a subset filter")
		}
	}
}

func TestApplyFilters_DateRangeInclusive(t *testing.T) {
	d := testDataset(t)
	start := day(2024, 1, 20)
	end := day(2024, 2, 10)

	v := ApplyFilters(d, Selections{
		DateColumn: "order_date",
		DateStart:  &start,
		DateEnd:    &end,
	})

	if v.Len() != 2 {
		t.Fatalf("view has %d rows, want 2 (inclusive bounds)", v.Len())
	}
	if v.Indices[0] != 1 || v.Indices[1] != 2 {
		t.Errorf("indices = %v, want [1 2]", v.Indices)
	}
}

func TestApplyFilters_MissingDateFailsActiveRange(t *testing.T) {
	d := testDataset(t)
	start := day(2024, 1, 1)
	end := day(2024, 12, 31)

	v := ApplyFilters(d, Selections{
		DateColumn: "order_date",
		DateStart:  &start,
		DateEnd:    &end,
	})
	for _, i := range v.Indices {
		if i == 4 {
			t.Error("row with missing date should fail an active date filter")
		}
	}
}

func TestApplyFilters_Conjunction(t *testing.T) {
	d := testDataset(t)
	start := day(2024, 2, 1)

	v := ApplyFilters(d, Selections{
		Categorical: map[string][]string{"region": {"East"}},
		DateColumn:  "order_date",
		DateStart:   &start,
	})

	if v.Len() != 1 || v.Indices[0] != 2 {
		t.Errorf("indices = %v, want [2]", v.Indices)
	}
}

func TestCategoricalOptions_ExcludeMissing(t *testing.T) {
	d := testDataset(t)
	region, _ := d.Column("region")

	opts := CategoricalOptions(region)
	want := []string{"East", "South", "West"}
	if len(opts) != len(want) {
		t.Fatalf("options = %v, want %v", opts, want)
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Errorf("options[%d] = %q, want %q", i, opts[i], want[i])
		}
	}
}

func TestSelections_Validate(t *testing.T) {
	d := testDataset(t)
	cl := dataset.NewClassifier(0)
	part := cl.PartitionColumns(d)

	tests := []struct {
		name    string
		sel     Selections
		wantErr bool
	}{
		{"empty", Selections{}, false},
		{"valid", Selections{Metric: "sales", DateColumn: "order_date", TopDimension: "region"}, false},
		{"unknown categorical", Selections{Categorical: map[string][]string{"nope": nil}}, true},
		{"metric not numeric", Selections{Metric: "region"}, true},
		{"date column not datetime", Selections{DateColumn: "sales"}, true},
		{"scatter axis not numeric", Selections{ScatterX: "region"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate(d, part)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelections_ApplyDefaults(t *testing.T) {
	d := testDataset(t)
	cl := dataset.NewClassifier(0)
	part := cl.PartitionColumns(d)

	var sel Selections
	sel.ApplyDefaults(d, part)

	if sel.Metric != "sales" {
		t.Errorf("Metric = %q, want sales", sel.Metric)
	}
	if sel.DateColumn != "order_date" {
		t.Errorf("DateColumn = %q, want order_date", sel.DateColumn)
	}
	if sel.TopDimension != "region" {
		t.Errorf("TopDimension = %q, want region", sel.TopDimension)
	}
	if sel.ScatterY != "" {
		t.Errorf("ScatterY = %q, want empty (only one numeric column)", sel.ScatterY)
	}
}
