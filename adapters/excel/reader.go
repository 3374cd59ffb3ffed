// Package excel loads xlsx and csv files into the in-memory table engine.
// Spreadsheets carry no declared column types, so columns where at least
// 90% of the non-empty cells parse as numbers become Float64 (cells that
// fail to parse are nulls) and everything else stays String. Empty cells
// are nulls either way.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"parqsum/adapters/table"
	"parqsum/domain/core"
	"parqsum/domain/summary"
)

// DataReader handles reading Excel and CSV files.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files,
// dispatching on the file extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Load reads the file into an in-memory table. The first row is the header;
// column order follows the header order.
func (r *DataReader) Load() (*table.Table, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}

	tbl, err := buildTable(rows)
	if err != nil {
		return nil, core.NewLoadError(r.filePath, err)
	}
	return tbl, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	return rows, nil
}

func buildTable(rows [][]string) (*table.Table, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("file has no header row")
	}
	headers := rows[0]
	data := rows[1:]

	tbl := table.New()
	for colIdx, name := range headers {
		cells := make([]string, len(data))
		for rowIdx, row := range data {
			// excelize drops trailing empty cells; short rows read as empty.
			if colIdx < len(row) {
				cells[rowIdx] = row[colIdx]
			}
		}
		col := buildColumn(name, cells)
		if err := tbl.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// numericParseRatio is the share of non-empty cells that must parse as
// numbers for a column to be treated as numeric.
const numericParseRatio = 0.9

// buildColumn infers the column type from its cells and converts them.
func buildColumn(name string, cells []string) *table.Column {
	if isNumericColumn(cells) {
		values := make([]any, len(cells))
		for i, cell := range cells {
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" {
				continue
			}
			f, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				// Below the ratio cutoff the stray cell is noise, not a
				// reason to demote the column.
				continue
			}
			values[i] = f
		}
		return table.NewColumn(name, summary.DTypeFloat64, values)
	}

	values := make([]any, len(cells))
	for i, cell := range cells {
		if cell != "" {
			values[i] = cell
		}
	}
	return table.NewColumn(name, summary.DTypeString, values)
}

// isNumericColumn reports whether at least numericParseRatio of the
// non-empty cells parse as floats. A column with no non-empty cells stays
// String.
func isNumericColumn(cells []string) bool {
	nonEmpty := 0
	parsed := 0
	for _, cell := range cells {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			parsed++
		}
	}
	if nonEmpty == 0 {
		return false
	}
	return float64(parsed) >= numericParseRatio*float64(nonEmpty)
}
