package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/CalKK/campaignmessaging/internal/core"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSV reads comma- or semicolon-separated exports. A UTF-8 or UTF-16 byte
// order mark is honoured and stripped; invalid UTF-8 is replaced with
// U+FFFD instead of failing the upload.
type CSV struct {
	// Comma forces the delimiter. Zero means detect from the first line.
	Comma rune
}

// Decode returns one RawRow of strings per record. Empty fields stay "" so
// the normalizer can recognise blank rows.
func (c CSV) Decode(data []byte) ([]core.RawRow, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, core.NewDecodeError("", fmt.Errorf("encoding error: %w", err))
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = c.Comma
	if r.Comma == 0 {
		r.Comma = sniffDelimiter(text)
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out []core.RawRow
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.NewDecodeError("", fmt.Errorf("invalid csv: %w", err))
		}
		row := make(core.RawRow, len(record))
		for i, v := range record {
			row[i] = v
		}
		out = append(out, row)
	}
	return out, nil
}

// Encode writes rows as comma-separated UTF-8.
func (c CSV) Encode(rows []core.NormalizedRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if c.Comma != 0 {
		w.Comma = c.Comma
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sniffDelimiter picks ';' when the first line has semicolons but no commas,
// which is how spreadsheet apps export CSV in comma-decimal locales.
func sniffDelimiter(text []byte) rune {
	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	if bytes.IndexByte(line, ';') >= 0 && bytes.IndexByte(line, ',') < 0 {
		return ';'
	}
	return ','
}
