package loader

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/databoard/databoard/internal/dataset"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Order ID,Customer,Sub-Category,Sales,Order Date
1001,Alice,Chairs,120.50,2024-01-05
1002,Bob,Tables,89.99,2024-01-09
1003,Alice,Chairs,240.00,2024-02-14
`

func TestLoad_CSV(t *testing.T) {
	d, err := Load([]byte(sampleCSV), "csv", Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantNames := []string{"order_id", "customer_name", "sub_category", "sales", "order_date"}
	got := d.Names()
	if len(got) != len(wantNames) {
		t.Fatalf("Names() = %v, want %v", got, wantNames)
	}
	for i := range wantNames {
		if got[i] != wantNames[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], wantNames[i])
		}
	}

	if d.Rows() != 3 {
		t.Errorf("Rows() = %d, want 3", d.Rows())
	}

	sales, ok := d.Column("sales")
	if !ok || sales.Kind != dataset.KindNumeric {
		t.Fatalf("sales column kind = %v, want numeric", sales.Kind)
	}
	if sales.Floats[0] != 120.50 {
		t.Errorf("sales[0] = %v, want 120.50", sales.Floats[0])
	}

	dates, ok := d.Column("order_date")
	if !ok || dates.Kind != dataset.KindDatetime {
		t.Fatalf("order_date column kind = %v, want datetime", dates.Kind)
	}
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if !dates.Times[0].Equal(want) {
		t.Errorf("order_date[0] = %v, want %v", dates.Times[0], want)
	}
}

func TestLoad_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Region", "Sales", "Order Date"},
		{"East", 100.0, "2024-01-05"},
		{"West", 250.5, "2024-02-09"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	d, err := Load(buf.Bytes(), ".xlsx", Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if d.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", d.Rows())
	}
	sales, ok := d.Column("sales")
	if !ok || sales.Kind != dataset.KindNumeric {
		t.Fatal("sales should be a numeric column")
	}
	if sales.Floats[1] != 250.5 {
		t.Errorf("sales[1] = %v, want 250.5", sales.Floats[1])
	}
	dates, _ := d.Column("order_date")
	if dates.Kind != dataset.KindDatetime {
		t.Errorf("order_date kind = %v, want datetime", dates.Kind)
	}
}

func TestLoad_Latin1(t *testing.T) {
	// "Café" with an ISO 8859-1 encoded é (0xE9), invalid as UTF-8.
	raw := append([]byte("Store,Sales\nCaf"), 0xE9)
	raw = append(raw, []byte(",10\n")...)

	d, err := Load(raw, "csv", Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	store, _ := d.Column("store")
	if store.Strings[0] != "Café" {
		t.Errorf("store[0] = %q, want %q", store.Strings[0], "Café")
	}
}

func TestLoad_UnparsableDatesBecomeMissing(t *testing.T) {
	csv := "Order Date,Sales\n2024-01-05,10\nnot-a-date,20\n,30\n"
	d, err := Load([]byte(csv), "csv", Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dates, _ := d.Column("order_date")
	if dates.Kind != dataset.KindDatetime {
		t.Fatalf("kind = %v, want datetime", dates.Kind)
	}
	wantMissing := []bool{false, true, true}
	for i, want := range wantMissing {
		if dates.Missing[i] != want {
			t.Errorf("Missing[%d] = %v, want %v", i, dates.Missing[i], want)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		ext  string
	}{
		{"empty upload", nil, "csv"},
		{"empty csv", []byte(""), "csv"},
		{"unsupported extension", []byte("a,b\n1,2\n"), "pdf"},
		{"garbage xlsx", []byte("definitely not a zip"), "xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.data, tt.ext, Options{}); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_RaggedRows(t *testing.T) {
	csv := "a,b,c\n1,2\n4,5,6,7\n"
	d, err := Load([]byte(csv), "csv", Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", d.Rows())
	}
	c, _ := d.Column("c")
	if !c.Missing[0] {
		t.Error("short row should leave trailing cells missing")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"120.50", 120.50, true},
		{"$1,200.00", 1200, true},
		{"(45.5)", -45.5, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12 Main St", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseNumber(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2024-01-05", "2024-01-05", true},
		{"1/5/2024", "2024-01-05", true},
		{"Jan 5, 2024", "2024-01-05", true},
		{"20240105", "2024-01-05", true},
		{"", "", false},
		{"yesterday", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`="1001"`, "1001"},
		{"  spaced  ", "spaced"},
		{`"quoted"`, "quoted"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_MixedNumericStaysText(t *testing.T) {
	csv := "Code,Sales\nA12,10\n34,20\n"
	d, err := Load([]byte(csv), "csv", Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	code, _ := d.Column("code")
	if code.Kind != dataset.KindText {
		t.Errorf("code kind = %v, want text", code.Kind)
	}
	if !strings.Contains(strings.Join(code.Strings, ","), "A12") {
		t.Error("text values should be preserved")
	}
}
