package core

import "strings"

// IsHeaderRow reports whether row looks like column labels rather than data.
//
// It matches when column A mentions "name" or "phone", or column B mentions
// "tel" or "phone", ignoring case. Rows narrower than two cells are never
// headers.
func IsHeaderRow(row NormalizedRow) bool {
	if len(row) < RowWidth {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	second := strings.ToLower(strings.TrimSpace(row[1]))

	return strings.Contains(first, "name") ||
		strings.Contains(second, "tel") ||
		strings.Contains(first, "phone") ||
		strings.Contains(second, "phone")
}

// dataStart returns the index of the first data row.
func dataStart(rows []NormalizedRow) int {
	if len(rows) > 0 && IsHeaderRow(rows[0]) {
		return 1
	}
	return 0
}
