package sheet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/CalKK/campaignmessaging/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, cells map[string]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSX_DecodeKeepsCellTypes(t *testing.T) {
	data := buildWorkbook(t, map[string]any{
		"A1": "Name", "B1": "Phone",
		"A2": "Bob", "B2": 712345678,
		"A3": "Alice", "B3": "0712345678",
		"A5": "  Carol ", "B5": 254712345678.0, "C5": "ignored",
		"A6": true,
	})

	rows, err := XLSX{}.Decode(data)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, core.RawRow{"Name", "Phone"}, rows[0])
	assert.Equal(t, core.RawRow{"Bob", int64(712345678)}, rows[1])
	assert.Equal(t, core.RawRow{"Alice", "0712345678"}, rows[2], "text cells keep their leading zero")
	assert.True(t, core.IsEmptyRow(rows[3]), "gap row decodes as empty")
	assert.Equal(t, "254712345678", core.CellText(rows[4][1]))
	assert.Equal(t, true, rows[5][0])
}

func TestXLSX_DecodeThroughPipeline(t *testing.T) {
	data := buildWorkbook(t, map[string]any{
		"A1": "Name", "B1": "Phone",
		"A2": "Alice", "B2": "0712345678",
		"A3": "Bob", "B3": 712345678,
		"B4": 254700000000,
		"A5": "Carol",
	})

	raw, err := XLSX{}.Decode(data)
	require.NoError(t, err)

	result := core.Validate(core.Normalize(raw))
	assert.Equal(t, 4, result.Found())
	assert.Equal(t, []core.Contact{{Name: "Bob", Phone: "254712345678"}}, result.Contacts)
	assert.Len(t, result.Errors, 3)
}

func TestXLSX_DecodeRejectsGarbage(t *testing.T) {
	_, err := XLSX{}.Decode([]byte("definitely not a zip archive"))
	require.Error(t, err)
	assert.True(t, core.IsDecodeError(err))
}

func TestXLSX_EncodeRoundTrip(t *testing.T) {
	rows := []core.NormalizedRow{{"Name", "Phone"}, {"Bob", "712345678"}, {"Eve", ""}}

	data, err := XLSX{}.Encode(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{CleanedSheetName}, f.GetSheetList())
	phone, err := f.GetCellValue(CleanedSheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "712345678", phone)

	// Encoded phones are text, so decoding gives the same strings back.
	raw, err := XLSX{}.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, rows, core.Normalize(raw))
}

func TestCSV_Decode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []core.RawRow
	}{
		{
			name: "comma separated with BOM",
			in:   "\xEF\xBB\xBFName,Phone\nBob,712345678\n",
			want: []core.RawRow{{"Name", "Phone"}, {"Bob", "712345678"}},
		},
		{
			name: "semicolon export",
			in:   "Name;Phone\r\nBob;\"0712 345 678\"\r\n",
			want: []core.RawRow{{"Name", "Phone"}, {"Bob", "0712 345 678"}},
		},
		{
			name: "ragged rows",
			in:   "A\nB,1,x\n",
			want: []core.RawRow{{"A"}, {"B", "1", "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CSV{}.Decode([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSV_EncodeDecode(t *testing.T) {
	rows := []core.NormalizedRow{{"Ann, Jr", "254712345678"}, {"Bob", ""}}

	data, err := CSV{}.Encode(rows)
	require.NoError(t, err)

	raw, err := CSV{}.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, rows, core.Normalize(raw))
}

func TestForFilename(t *testing.T) {
	c, err := ForFilename("contacts.CSV")
	require.NoError(t, err)
	assert.IsType(t, CSV{}, c)

	c, err = ForFilename("contacts.xlsx")
	require.NoError(t, err)
	assert.IsType(t, XLSX{}, c)

	c, err = ForFilename("upload")
	require.NoError(t, err)
	assert.IsType(t, XLSX{}, c)

	_, err = ForFilename("old.xls")
	require.Error(t, err)
	assert.True(t, core.IsDecodeError(err))
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}
