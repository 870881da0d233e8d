package core

// validation.go decides, row by row, whether a normalized row becomes a
// Contact or a ValidationError.
//
// Validation happens at two levels:
//  1. Header detection: a single look at the first row (see IsHeaderRow)
//  2. Row validation: name presence, phone presence, phone sanitization,
//     country-code inference, length and leading-zero checks
//
// Row errors are collected, never returned as a Go error, so one bad row
// cannot stop the rest of the sheet from being processed.

import "fmt"

// Row error messages shown to users.
const (
	msgTooShort     = "Row too short (needs at least 2 columns)"
	msgMissingName  = "Name is empty or missing"
	msgMissingPhone = "Telephone is empty or missing"
)

// Result holds the outcome of a validation pass.
type Result struct {
	Contacts []Contact
	Errors   []ValidationError

	// StartIndex is 1 when the first row was treated as a header, else 0.
	StartIndex int
	// Total is the number of normalized rows, header included.
	Total int
}

// Found returns the number of data rows considered.
func (r Result) Found() int {
	return r.Total - r.StartIndex
}

// Summary derives the user-facing summary.
func (r Result) Summary() Summary {
	details := r.Errors
	if details == nil {
		details = []ValidationError{}
	}
	return Summary{
		Found:        r.Found(),
		Errors:       len(r.Errors),
		ErrorDetails: details,
	}
}

// Validator turns normalized rows into contacts.
type Validator struct {
	Rule        CountryCodeRule
	Diagnostics Diagnostics
}

// NewValidator creates a Validator using rule for country-code inference.
func NewValidator(rule CountryCodeRule, d Diagnostics) *Validator {
	return &Validator{Rule: rule, Diagnostics: d}
}

// Validate checks every data row and returns the accepted contacts and the
// rejected rows, both in input order.
func (v *Validator) Validate(rows []NormalizedRow) Result {
	diag := orNop(v.Diagnostics)

	result := Result{
		Contacts:   []Contact{},
		Errors:     []ValidationError{},
		StartIndex: dataStart(rows),
		Total:      len(rows),
	}
	if result.StartIndex == 1 {
		diag.HeaderDetected(rows[0])
	}

	for i := result.StartIndex; i < len(rows); i++ {
		rowIndex := i + 1

		contact, verr := v.ValidateRow(rowIndex, rows[i])
		if verr != nil {
			diag.RowRejected(*verr)
			result.Errors = append(result.Errors, *verr)
			continue
		}

		diag.RowAccepted(rowIndex, contact)
		result.Contacts = append(result.Contacts, contact)
	}

	return result
}

// ValidateRow checks a single row. Exactly one of the return values is meaningful:
// a nil *ValidationError means the Contact is valid.
func (v *Validator) ValidateRow(rowIndex int, row NormalizedRow) (Contact, *ValidationError) {
	if len(row) < RowWidth {
		return Contact{}, &ValidationError{
			RowIndex: rowIndex,
			Message:  msgTooShort,
			Kind:     KindTooShort,
		}
	}

	name, phone := row[0], row[1]

	if name == "" {
		return Contact{}, &ValidationError{
			RowIndex: rowIndex,
			Phone:    phone,
			Message:  msgMissingName,
			Kind:     KindMissingName,
		}
	}
	if phone == "" {
		return Contact{}, &ValidationError{
			RowIndex: rowIndex,
			Name:     name,
			Message:  msgMissingPhone,
			Kind:     KindMissingPhone,
		}
	}

	digits := SanitizePhone(phone)
	if completed, inf := v.Rule.Apply(digits); inf == CountryCodeAdded {
		orNop(v.Diagnostics).CountryCodeAdded(rowIndex, digits, completed)
		digits = completed
	}

	if len(digits) < MinPhoneDigits || len(digits) > MaxPhoneDigits {
		return Contact{}, &ValidationError{
			RowIndex: rowIndex,
			Name:     name,
			Phone:    phone,
			Message: fmt.Sprintf("Invalid phone length after sanitization (must be %d-%d digits for international format). Current: %d digits. Original: %s",
				MinPhoneDigits, MaxPhoneDigits, len(digits), phone),
			Kind: KindInvalidLength,
		}
	}

	if digits[0] == '0' {
		return Contact{}, &ValidationError{
			RowIndex: rowIndex,
			Name:     name,
			Phone:    phone,
			Message: fmt.Sprintf("Phone starts with 0 (local format). International format is required (e.g., %s instead of 07). Current: %s",
				v.countryHint(), digits),
			Kind: KindLeadingZero,
		}
	}

	return Contact{Name: name, Phone: digits}, nil
}

func (v *Validator) countryHint() string {
	if v.Rule.CountryCode != "" {
		return v.Rule.CountryCode
	}
	return DefaultCountryCodeRule.CountryCode
}

// Validate runs a Validator with the default rule and no diagnostics.
func Validate(rows []NormalizedRow) Result {
	return (&Validator{Rule: DefaultCountryCodeRule}).Validate(rows)
}
