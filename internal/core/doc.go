// Package core turns uploaded contact spreadsheets into validated contacts.
//
// This package holds all the decision logic and no transport code. Web
// handlers and the CLI both drive it through [Service].
//
// # Pipeline
//
// Every upload goes through the same one-way flow:
//
//	bytes -> SpreadsheetCodec.Decode -> []RawRow
//	      -> Normalizer.Normalize     -> []NormalizedRow (always two cells)
//	      -> Validator.Validate       -> Result{Contacts, Errors}
//
// Rows never influence one another. The only state shared between rows is
// the header decision, made once on the first normalized row.
//
// # Phone Numbers
//
// A phone cell is reduced to its digits, completed by a [CountryCodeRule]
// when it looks like a local number, and then checked for length (10-15
// digits) and for a leading zero. The default rule adds Kenya's 254 to
// nine-digit numbers starting with 1 or 7.
//
// # Error Handling
//
// Row problems are returned as [ValidationError] values inside the
// [Result] and never abort a pass. Request-level failures are Go errors:
//
//   - [DecodeError]: the upload is not a readable spreadsheet (client error)
//   - [WriteFailure]: an output workbook could not be produced (server error)
//   - [ErrTooManyUploads]: no processing slot became free in time
//
// [MapError] converts these to user messages with support codes.
package core
