// Package sheet decodes and encodes contact spreadsheets.
//
// XLSX is backed by excelize and keeps numeric cells numeric, so the core
// sees the same values a spreadsheet user typed. CSV covers exports from
// tools that cannot write workbooks.
package sheet

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/CalKK/campaignmessaging/internal/core"
	"github.com/xuri/excelize/v2"
)

// CleanedSheetName is the sheet written by XLSX.Encode.
const CleanedSheetName = "Cleaned Data"

// XLSX reads the first worksheet of a workbook and writes single-sheet workbooks.
type XLSX struct{}

// Decode returns the rows of the first worksheet. Empty cells decode as nil,
// numeric cells as int64 or float64, boolean cells as bool, everything
// else as the stored string.
func (XLSX) Decode(data []byte) ([]core.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, core.NewDecodeError("", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewDecodeError("", fmt.Errorf("workbook has no sheets"))
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, core.NewDecodeError("", fmt.Errorf("read sheet %q: %w", sheet, err))
	}

	out := make([]core.RawRow, 0, len(rows))
	for r, row := range rows {
		raw := make(core.RawRow, len(row))
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, core.NewDecodeError("", err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, core.NewDecodeError("", fmt.Errorf("cell %s: %w", cell, err))
			}
			raw[c] = typedValue(typ, value)
		}
		out = append(out, raw)
	}

	return out, nil
}

// Encode writes rows to a new workbook with a single "Cleaned Data" sheet.
func (XLSX) Encode(rows []core.NormalizedRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), CleanedSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(CleanedSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// typedValue restores the cell's stored type. Cells without an explicit
// type attribute are numbers in SpreadsheetML.
func typedValue(typ excelize.CellType, value string) any {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return parseNumber(value)
	case excelize.CellTypeBool:
		return value == "1" || value == "TRUE" || value == "true"
	default:
		return value
	}
}

// parseNumber returns int64 for integers, float64 for decimals, or the
// original string.
func parseNumber(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
