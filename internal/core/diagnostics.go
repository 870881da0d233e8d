package core

// Diagnostics receives informational events from the normalizer and the
// validator. Events never change the outcome of a pass; they exist so that
// callers can trace what happened to each row.
//
// The logging package provides an slog-backed implementation.
type Diagnostics interface {
	// RowSkipped reports a structurally empty raw row (1-based).
	RowSkipped(rawIndex int)

	// RowTruncated reports a raw row (1-based) that had more than two
	// columns and was cut down to the first two.
	RowTruncated(rawIndex int, width int)

	// HeaderDetected reports that the first normalized row was a header.
	HeaderDetected(row NormalizedRow)

	// CountryCodeAdded reports a phone that was completed by inference.
	CountryCodeAdded(rowIndex int, before, after string)

	// RowRejected reports a validation error.
	RowRejected(err ValidationError)

	// RowAccepted reports a valid contact.
	RowAccepted(rowIndex int, c Contact)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

func (NopDiagnostics) RowSkipped(int)                       {}
func (NopDiagnostics) RowTruncated(int, int)                {}
func (NopDiagnostics) HeaderDetected(NormalizedRow)         {}
func (NopDiagnostics) CountryCodeAdded(int, string, string) {}
func (NopDiagnostics) RowRejected(ValidationError)          {}
func (NopDiagnostics) RowAccepted(int, Contact)             {}

func orNop(d Diagnostics) Diagnostics {
	if d == nil {
		return NopDiagnostics{}
	}
	return d
}

// MultiDiagnostics fans each event out to every sink in order.
type MultiDiagnostics []Diagnostics

func (m MultiDiagnostics) RowSkipped(rawIndex int) {
	for _, d := range m {
		d.RowSkipped(rawIndex)
	}
}

func (m MultiDiagnostics) RowTruncated(rawIndex, width int) {
	for _, d := range m {
		d.RowTruncated(rawIndex, width)
	}
}

func (m MultiDiagnostics) HeaderDetected(row NormalizedRow) {
	for _, d := range m {
		d.HeaderDetected(row)
	}
}

func (m MultiDiagnostics) CountryCodeAdded(rowIndex int, before, after string) {
	for _, d := range m {
		d.CountryCodeAdded(rowIndex, before, after)
	}
}

func (m MultiDiagnostics) RowRejected(err ValidationError) {
	for _, d := range m {
		d.RowRejected(err)
	}
}

func (m MultiDiagnostics) RowAccepted(rowIndex int, c Contact) {
	for _, d := range m {
		d.RowAccepted(rowIndex, c)
	}
}
