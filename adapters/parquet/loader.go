// Package parquet materializes a parquet file into the in-memory table
// engine. Only flat schemas are supported; nested groups have no place in a
// per-column summary.
package parquet

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"parqsum/adapters/table"
	"parqsum/domain/core"
	"parqsum/domain/summary"
)

// Options control how a file is read.
type Options struct {
	// LowMemory trades speed for a smaller footprint: page indexes and
	// bloom filters are skipped and the read buffer is kept small.
	LowMemory bool
}

const lowMemoryReadBuffer = 4 * 1024

// Load reads the parquet file at path into an in-memory table. Column order
// follows the file schema.
func Load(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}

	var fileOpts []parquet.FileOption
	if opts.LowMemory {
		fileOpts = append(fileOpts,
			parquet.SkipPageIndex(true),
			parquet.SkipBloomFilters(true),
			parquet.ReadBufferSize(lowMemoryReadBuffer),
		)
	}

	pf, err := parquet.OpenFile(f, stat.Size(), fileOpts...)
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}

	tbl, err := buildTable(pf)
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}
	return tbl, nil
}

func buildTable(pf *parquet.File) (*table.Table, error) {
	fields := pf.Schema().Fields()

	columns := make([][]any, len(fields))
	for _, rg := range pf.RowGroups() {
		chunks := rg.ColumnChunks()
		if len(chunks) != len(fields) {
			return nil, fmt.Errorf("nested schemas are not supported (%d fields, %d leaf columns)",
				len(fields), len(chunks))
		}
		for i, chunk := range chunks {
			vals, err := readChunk(chunk)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", fields[i].Name(), err)
			}
			columns[i] = append(columns[i], vals...)
		}
	}

	tbl := table.New()
	for i, field := range fields {
		dtype := dtypeOf(field)
		col := table.NewColumn(field.Name(), dtype, columns[i])
		if err := tbl.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// readChunk drains every page of a column chunk into Go values, nil for
// nulls.
func readChunk(chunk parquet.ColumnChunk) ([]any, error) {
	var out []any
	pages := chunk.Pages()
	defer pages.Close()

	buf := make([]parquet.Value, 1024)
	for {
		page, err := pages.ReadPage()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		vr := page.Values()
		for {
			n, err := vr.ReadValues(buf)
			for _, v := range buf[:n] {
				out = append(out, goValue(v))
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}
	}
}

// goValue converts a parquet value to the representation the table engine
// expects: float64 for numeric kinds, string for byte arrays, nil for nulls.
func goValue(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return float64(v.Int32())
	case parquet.Int64:
		return float64(v.Int64())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return v.String()
	default:
		return v.String()
	}
}

// dtypeOf maps a parquet leaf field onto the engine's closed type set.
// Logical type annotations refine the physical kind; anything unrecognized
// lands on Other and gets classified by cardinality.
func dtypeOf(field parquet.Field) summary.DType {
	t := field.Type()

	if lt := t.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil:
			return summary.DTypeString
		case lt.Integer != nil:
			return integerDType(lt.Integer.BitWidth, lt.Integer.IsSigned)
		case lt.Enum != nil:
			return summary.DTypeEnum
		}
	}

	switch t.Kind() {
	case parquet.Int32:
		return summary.DTypeInt32
	case parquet.Int64:
		return summary.DTypeInt64
	case parquet.Float:
		return summary.DTypeFloat32
	case parquet.Double:
		return summary.DTypeFloat64
	default:
		return summary.DTypeOther
	}
}

func integerDType(bitWidth int8, signed bool) summary.DType {
	if signed {
		switch bitWidth {
		case 8:
			return summary.DTypeInt8
		case 16:
			return summary.DTypeInt16
		case 32:
			return summary.DTypeInt32
		default:
			return summary.DTypeInt64
		}
	}
	switch bitWidth {
	case 8:
		return summary.DTypeUInt8
	case 16:
		return summary.DTypeUInt16
	case 32:
		return summary.DTypeUInt32
	default:
		return summary.DTypeUInt64
	}
}
