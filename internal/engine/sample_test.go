package engine

import (
	"testing"

	"github.com/databoard/databoard/internal/dataset"
)

func wideDataset(t *testing.T, rows int) *dataset.Dataset {
	t.Helper()
	x := &dataset.Column{Name: "sales", Kind: dataset.KindNumeric, Floats: make([]float64, rows), Missing: make([]bool, rows)}
	y := &dataset.Column{Name: "profit", Kind: dataset.KindNumeric, Floats: make([]float64, rows), Missing: make([]bool, rows)}
	for i := 0; i < rows; i++ {
		x.Floats[i] = float64(i)
		y.Floats[i] = float64(i * 2)
	}
	return dataset.New([]*dataset.Column{x, y})
}

func TestSampleRows_UnderLimit(t *testing.T) {
	rows := SampleRows(500, 1000, 1)
	if len(rows) != 500 {
		t.Errorf("len = %d, want all 500 rows", len(rows))
	}
	for i, r := range rows {
		if r != i {
			t.Fatalf("rows[%d] = %d, want identity order", i, r)
		}
	}
}

func TestSampleRows_OverLimit(t *testing.T) {
	rows := SampleRows(2000, 1000, 1)
	if len(rows) != 1000 {
		t.Fatalf("len = %d, want exactly 1000", len(rows))
	}
	// Ascending, unique, in range.
	seen := make(map[int]bool)
	for i, r := range rows {
		if r < 0 || r >= 2000 {
			t.Fatalf("row %d out of range", r)
		}
		if seen[r] {
			t.Fatalf("duplicate row %d", r)
		}
		seen[r] = true
		if i > 0 && rows[i-1] >= r {
			t.Fatalf("rows not ascending at %d", i)
		}
	}
}

func TestSampleRows_Deterministic(t *testing.T) {
	a := SampleRows(2000, 1000, 1)
	b := SampleRows(2000, 1000, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed must produce the same sample")
		}
	}

	c := SampleRows(2000, 1000, 2)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should produce different samples")
	}
}

func TestScatterSample(t *testing.T) {
	d := wideDataset(t, 2000)
	points := ScatterSample(FullView(d), "sales", "profit", "", 1000, 1)
	if len(points) != 1000 {
		t.Fatalf("points = %d, want exactly 1000", len(points))
	}
	for _, p := range points {
		if p.Y != p.X*2 {
			t.Fatalf("point (%v, %v) does not match source data", p.X, p.Y)
		}
	}
}

func TestScatterSample_SmallViewKeepsAll(t *testing.T) {
	d := wideDataset(t, 10)
	points := ScatterSample(FullView(d), "sales", "profit", "", 1000, 1)
	if len(points) != 10 {
		t.Errorf("points = %d, want 10", len(points))
	}
}

func TestScatterSample_UnknownColumn(t *testing.T) {
	d := wideDataset(t, 10)
	if points := ScatterSample(FullView(d), "sales", "nope", "", 1000, 1); points != nil {
		t.Errorf("expected nil for unknown column, got %d points", len(points))
	}
}
