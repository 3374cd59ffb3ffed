package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"parqsum/domain/summary"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, "age,region\n34,north\n28,south\n45,north\n")

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rows, cols := tbl.Shape()
	if rows != 3 || cols != 2 {
		t.Errorf("Shape = (%d, %d), want (3, 2)", rows, cols)
	}

	age, err := tbl.Column("age")
	if err != nil {
		t.Fatal(err)
	}
	if age.DType() != summary.DTypeFloat64 {
		t.Errorf("age dtype = %s, want Float64", age.DType())
	}
	mean := age.Mean()
	if mean == nil || *mean < 35.6 || *mean > 35.7 {
		t.Errorf("age mean = %v, want ~35.67", mean)
	}

	region, err := tbl.Column("region")
	if err != nil {
		t.Fatal(err)
	}
	if region.DType() != summary.DTypeString {
		t.Errorf("region dtype = %s, want String", region.DType())
	}
	n, err := region.UniqueCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("region unique count = %d, want 2", n)
	}
}

func TestLoadCSVEmptyCellsAreNulls(t *testing.T) {
	path := writeTempCSV(t, "x,s\n1,a\n,b\n3,\n")

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	x, err := tbl.Column("x")
	if err != nil {
		t.Fatal(err)
	}
	// Column stays numeric: empty cells are nulls, not parse failures.
	if x.DType() != summary.DTypeFloat64 {
		t.Errorf("x dtype = %s, want Float64", x.DType())
	}
	mean := x.Mean()
	if mean == nil || *mean != 2.0 {
		t.Errorf("x mean = %v, want 2.0 over valid values", mean)
	}

	s, err := tbl.Column("s")
	if err != nil {
		t.Fatal(err)
	}
	groups, err := s.ValueCounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Errorf("got %d groups, want 2 (empty cell excluded)", len(groups))
	}
}

func TestLoadCSVMostlyNumericColumn(t *testing.T) {
	// Nine of ten cells parse, so the column clears the 90% cutoff and the
	// stray cell reads as a null.
	path := writeTempCSV(t, "reading\n1\n2\n3\n4\n5\n6\n7\n8\n9\noops\n")

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	reading, err := tbl.Column("reading")
	if err != nil {
		t.Fatal(err)
	}
	if reading.DType() != summary.DTypeFloat64 {
		t.Errorf("reading dtype = %s, want Float64", reading.DType())
	}
	mean := reading.Mean()
	if mean == nil || *mean != 5.0 {
		t.Errorf("reading mean = %v, want 5.0 over the parsed values", mean)
	}
	n, err := reading.UniqueCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 9 {
		t.Errorf("reading unique count = %d, want 9", n)
	}
}

func TestLoadCSVMixedColumnStaysString(t *testing.T) {
	path := writeTempCSV(t, "code\n12\nA7\n9\n")

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	code, err := tbl.Column("code")
	if err != nil {
		t.Fatal(err)
	}
	if code.DType() != summary.DTypeString {
		t.Errorf("code dtype = %s, want String", code.DType())
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	cells := map[string]any{
		"A1": "score", "B1": "label",
		"A2": 1.5, "B2": "x",
		"A3": 2.5, "B3": "y",
	}
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	tbl, err := NewDataReader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rows, cols := tbl.Shape()
	if rows != 2 || cols != 2 {
		t.Errorf("Shape = (%d, %d), want (2, 2)", rows, cols)
	}

	score, err := tbl.Column("score")
	if err != nil {
		t.Fatal(err)
	}
	if score.DType() != summary.DTypeFloat64 {
		t.Errorf("score dtype = %s, want Float64", score.DType())
	}
	mean := score.Mean()
	if mean == nil || *mean != 2.0 {
		t.Errorf("score mean = %v, want 2.0", mean)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).Load(); err == nil {
		t.Error("expected error for missing file")
	}
}
