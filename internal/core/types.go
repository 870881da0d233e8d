package core

import "fmt"

// RawRow is one spreadsheet row as decoded, before any cleanup.
// Cells may be string, int64, float64, bool or nil.
type RawRow []any

// NormalizedRow is a cleaned row. It always holds exactly two trimmed
// cells: the name (column A) and the phone text (column B).
type NormalizedRow []string

// Name returns column A.
func (r NormalizedRow) Name() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Phone returns column B as written in the sheet.
func (r NormalizedRow) Phone() string {
	if len(r) < 2 {
		return ""
	}
	return r[1]
}

// Contact is a validated record eligible for link generation.
// Phone holds 10-15 digits and never starts with '0'.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ErrorKind classifies why a row was rejected.
type ErrorKind int

const (
	KindTooShort ErrorKind = iota + 1
	KindMissingName
	KindMissingPhone
	KindInvalidLength
	KindLeadingZero
)

// String returns the stable identifier used in logs and metrics labels.
func (k ErrorKind) String() string {
	switch k {
	case KindTooShort:
		return "too_short"
	case KindMissingName:
		return "missing_name"
	case KindMissingPhone:
		return "missing_phone"
	case KindInvalidLength:
		return "invalid_length"
	case KindLeadingZero:
		return "leading_zero"
	default:
		return "unknown"
	}
}

// ValidationError describes a rejected row.
//
// RowIndex is 1-based and counted against the normalized grid, so a
// detected header occupies row 1. Phone carries the original text, not the
// sanitized digits.
type ValidationError struct {
	RowIndex int       `json:"rowIndex"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Message  string    `json:"error"`
	Kind     ErrorKind `json:"-"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.RowIndex, e.Message)
}

// Summary reports the outcome of one validation pass.
type Summary struct {
	Found        int               `json:"found"`
	Errors       int               `json:"errors"`
	ErrorDetails []ValidationError `json:"errorDetails"`
}
