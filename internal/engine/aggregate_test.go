package engine

import (
	"math"
	"testing"
	"time"
)

func TestComputeKPI(t *testing.T) {
	d := testDataset(t)
	v := FullView(d)

	kpi := ComputeKPI(v, "sales")
	if kpi.Total != 600 {
		t.Errorf("Total = %v, want 600", kpi.Total)
	}
	if kpi.Average != 120 {
		t.Errorf("Average = %v, want 120", kpi.Average)
	}
	if kpi.Count != 5 {
		t.Errorf("Count = %d, want 5", kpi.Count)
	}
}

func TestComputeKPI_FilteredTotalMatchesRows(t *testing.T) {
	d := testDataset(t)
	v := ApplyFilters(d, Selections{
		Categorical: map[string][]string{"region": {"East"}},
	})

	kpi := ComputeKPI(v, "sales")
	if kpi.Total != 150 {
		t.Errorf("Total = %v, want 150 (sum of exactly the filtered rows)", kpi.Total)
	}
	if kpi.Count != 2 {
		t.Errorf("Count = %d, want 2", kpi.Count)
	}
}

func TestComputeKPI_NoMetric(t *testing.T) {
	d := testDataset(t)
	kpi := ComputeKPI(FullView(d), "")
	if kpi.Total != 0 || kpi.Average != 0 {
		t.Errorf("KPI without metric = %+v, want zero sums", kpi)
	}
	if kpi.Count != 5 {
		t.Errorf("Count = %d, want 5", kpi.Count)
	}
}

func TestComputeKPI_EmptyView(t *testing.T) {
	d := testDataset(t)
	v := View{Data: d}
	kpi := ComputeKPI(v, "sales")
	if kpi.Total != 0 || kpi.Average != 0 || kpi.Count != 0 {
		t.Errorf("empty view KPI = %+v, want all zero", kpi)
	}
}

func TestGroupSum(t *testing.T) {
	d := testDataset(t)
	groups := GroupSum(FullView(d), "region", "sales")

	// First-occurrence order, missing region skipped.
	want := []Group{
		{Label: "East", Value: 150, Count: 2},
		{Label: "West", Value: 250, Count: 1},
		{Label: "South", Value: 125, Count: 1},
	}
	if len(groups) != len(want) {
		t.Fatalf("groups = %+v, want %+v", groups, want)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("groups[%d] = %+v, want %+v", i, groups[i], want[i])
		}
	}
}

func TestTopN(t *testing.T) {
	groups := []Group{
		{Label: "a", Value: 10},
		{Label: "b", Value: 40},
		{Label: "c", Value: 10},
		{Label: "d", Value: 25},
		{Label: "e", Value: 5},
		{Label: "f", Value: 30},
		{Label: "g", Value: 1},
	}

	top := TopN(groups, 5)
	if len(top) != 5 {
		t.Fatalf("len = %d, want 5", len(top))
	}

	wantOrder := []string{"b", "f", "d", "a", "c"}
	for i, label := range wantOrder {
		if top[i].Label != label {
			t.Errorf("top[%d] = %q, want %q", i, top[i].Label, label)
		}
	}

	// Descending check.
	for i := 1; i < len(top); i++ {
		if top[i].Value > top[i-1].Value {
			t.Errorf("top not descending at %d: %v > %v", i, top[i].Value, top[i-1].Value)
		}
	}
}

func TestTopN_StableTies(t *testing.T) {
	groups := []Group{
		{Label: "first", Value: 10},
		{Label: "second", Value: 10},
		{Label: "third", Value: 10},
	}
	top := TopN(groups, 5)
	for i, want := range []string{"first", "second", "third"} {
		if top[i].Label != want {
			t.Errorf("tie order broken: top[%d] = %q, want %q", i, top[i].Label, want)
		}
	}
}

func TestResampleMonthlySum(t *testing.T) {
	d := testDataset(t)
	points := ResampleMonthlySum(FullView(d), "order_date", "sales")

	if len(points) != 2 {
		t.Fatalf("points = %+v, want 2 buckets", points)
	}

	jan := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	if !points[0].Period.Equal(jan) || points[0].Value != 350 {
		t.Errorf("points[0] = %+v, want {%v 350}", points[0], jan)
	}
	if !points[1].Period.Equal(feb) || points[1].Value != 125 {
		t.Errorf("points[1] = %+v, want {%v 125}", points[1], feb)
	}
}

func TestResampleMonthlySum_Chronological(t *testing.T) {
	d := testDataset(t)
	points := ResampleMonthlySum(FullView(d), "order_date", "sales")
	for i := 1; i < len(points); i++ {
		if !points[i-1].Period.Before(points[i].Period) {
			t.Errorf("series not chronological at %d", i)
		}
	}
}

func TestMonthEnd_LeapYear(t *testing.T) {
	got := monthEnd(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("monthEnd(Feb 2024) = %v, want %v", got, want)
	}
}

func TestSortGroupsAscending(t *testing.T) {
	groups := []Group{{Label: "a", Value: 3}, {Label: "b", Value: 1}, {Label: "c", Value: 2}}
	asc := SortGroupsAscending(groups)
	for i := 1; i < len(asc); i++ {
		if asc[i].Value < asc[i-1].Value {
			t.Errorf("not ascending at %d", i)
		}
	}
	// Input untouched.
	if groups[0].Label != "a" {
		t.Error("SortGroupsAscending mutated its input")
	}
}

func TestGroupSum_SumsEqualFilteredTotal(t *testing.T) {
	d := testDataset(t)
	v := FullView(d)
	groups := GroupSum(v, "region", "sales")

	var grouped float64
	for _, g := range groups {
		grouped += g.Value
	}
	// The missing-region row (75) is in no group.
	kpi := ComputeKPI(v, "sales")
	if math.Abs((grouped+75)-kpi.Total) > 1e-9 {
		t.Errorf("grouped %v + skipped 75 != total %v", grouped, kpi.Total)
	}
}
