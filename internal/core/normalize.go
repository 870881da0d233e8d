package core

// normalize.go turns decoded spreadsheet rows into the fixed two-column
// shape the validator expects.
//
// Spreadsheet decoders hand back whatever the workbook stored: text,
// numbers that lost their formatting, booleans, gaps. The normalizer:
//  1. Drops rows whose cells are all nil or "" (checked before trimming)
//  2. Coerces every cell to text and trims surrounding whitespace
//  3. Pads short rows with "" and truncates wide rows to columns A and B
//
// It never rejects a row.

import (
	"fmt"
	"strconv"
	"strings"
)

// RowWidth is the number of columns kept per row: name and phone.
const RowWidth = 2

// Normalizer reshapes raw rows. The zero value is ready to use.
type Normalizer struct {
	Diagnostics Diagnostics
}

// NewNormalizer creates a Normalizer that reports to d. A nil d discards events.
func NewNormalizer(d Diagnostics) *Normalizer {
	return &Normalizer{Diagnostics: d}
}

// Normalize returns one NormalizedRow per non-empty raw row, in input order.
func (n *Normalizer) Normalize(rows []RawRow) []NormalizedRow {
	diag := orNop(n.Diagnostics)
	out := make([]NormalizedRow, 0, len(rows))

	for i, row := range rows {
		if IsEmptyRow(row) {
			diag.RowSkipped(i + 1)
			continue
		}

		cleaned := make(NormalizedRow, RowWidth)
		for col := 0; col < RowWidth && col < len(row); col++ {
			cleaned[col] = strings.TrimSpace(CellText(row[col]))
		}
		if len(row) > RowWidth {
			diag.RowTruncated(i+1, len(row))
		}

		out = append(out, cleaned)
	}

	return out
}

// Normalize is a convenience wrapper for a Normalizer without diagnostics.
func Normalize(rows []RawRow) []NormalizedRow {
	return (&Normalizer{}).Normalize(rows)
}

// Reshape converts already-textual rows (a previous Normalize result, or a
// CSV read) into RawRows so they can be fed back through Normalize.
func Reshape(rows [][]string) []RawRow {
	out := make([]RawRow, len(rows))
	for i, row := range rows {
		raw := make(RawRow, len(row))
		for j, cell := range row {
			raw[j] = cell
		}
		out[i] = raw
	}
	return out
}

// IsEmptyRow reports whether every cell is nil or the empty string.
// Whitespace-only cells count as content here; they are trimmed later.
func IsEmptyRow(row RawRow) bool {
	for _, cell := range row {
		if cell == nil {
			continue
		}
		if s, ok := cell.(string); ok && s == "" {
			continue
		}
		return false
	}
	return true
}

// CellText converts a decoded cell to text without locale formatting.
// Integral floats print without a fractional part, so a phone number the
// workbook stored as 712345678.0 comes back as "712345678".
func CellText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
