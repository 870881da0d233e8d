package core

// SpreadsheetCodec converts between workbook bytes and row grids.
//
// Decode must return a *DecodeError when data is not a readable
// spreadsheet. Encode is only used by the cleaning path.
type SpreadsheetCodec interface {
	Decode(data []byte) ([]RawRow, error)
	Encode(rows []NormalizedRow) ([]byte, error)
}

// CodecResolver picks a codec for an uploaded file name. It returns an
// error wrapping ErrUnsupportedFormat for formats it cannot read.
type CodecResolver func(filename string) (SpreadsheetCodec, error)
