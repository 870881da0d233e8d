package core

import (
	"reflect"
	"testing"
)

// recorder captures diagnostics events for assertions.
type recorder struct {
	NopDiagnostics
	skipped   []int
	truncated []int
	headers   int
	inferred  []string
	rejected  []ValidationError
	accepted  []Contact
}

func (r *recorder) RowSkipped(i int)                    { r.skipped = append(r.skipped, i) }
func (r *recorder) RowTruncated(i int, _ int)           { r.truncated = append(r.truncated, i) }
func (r *recorder) HeaderDetected(NormalizedRow)        { r.headers++ }
func (r *recorder) CountryCodeAdded(_ int, _, a string) { r.inferred = append(r.inferred, a) }
func (r *recorder) RowRejected(e ValidationError)       { r.rejected = append(r.rejected, e) }
func (r *recorder) RowAccepted(_ int, c Contact)        { r.accepted = append(r.accepted, c) }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []RawRow
		want []NormalizedRow
	}{
		{
			name: "trims and keeps two columns",
			in:   []RawRow{{"  Alice ", " 0712 345 678\t"}},
			want: []NormalizedRow{{"Alice", "0712 345 678"}},
		},
		{
			name: "pads short rows",
			in:   []RawRow{{"Alice"}},
			want: []NormalizedRow{{"Alice", ""}},
		},
		{
			name: "truncates wide rows once",
			in:   []RawRow{{"A", "B", "C", "D"}},
			want: []NormalizedRow{{"A", "B"}},
		},
		{
			name: "drops rows of nil and empty strings",
			in:   []RawRow{{nil, ""}, {}, {"Bob", "712345678"}, {"", nil, ""}},
			want: []NormalizedRow{{"Bob", "712345678"}},
		},
		{
			name: "whitespace-only row survives as blanks",
			in:   []RawRow{{"   ", " "}},
			want: []NormalizedRow{{"", ""}},
		},
		{
			name: "coerces numbers and booleans",
			in: []RawRow{
				{"Int", int64(712345678)},
				{"Float", float64(254712345678)},
				{"Frac", 1.5},
				{true, nil},
			},
			want: []NormalizedRow{
				{"Int", "712345678"},
				{"Float", "254712345678"},
				{"Frac", "1.5"},
				{"true", ""},
			},
		},
		{
			name: "nil inside a kept row becomes empty",
			in:   []RawRow{{nil, "254700000000"}},
			want: []NormalizedRow{{"", "254700000000"}},
		},
		{
			name: "empty input",
			in:   nil,
			want: []NormalizedRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalize_Diagnostics(t *testing.T) {
	rec := &recorder{}
	n := NewNormalizer(rec)

	n.Normalize([]RawRow{
		{"Name", "Phone"},
		{nil, nil},
		{"A", "B", "C"},
		{""},
	})

	if !reflect.DeepEqual(rec.skipped, []int{2, 4}) {
		t.Errorf("skipped = %v, want [2 4]", rec.skipped)
	}
	if !reflect.DeepEqual(rec.truncated, []int{3}) {
		t.Errorf("truncated = %v, want [3]", rec.truncated)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := []RawRow{
		{" Alice ", float64(712345678), "extra"},
		{nil, ""},
		{"Bob"},
		{"  ", "254 700 000 000 "},
	}

	once := Normalize(raw)
	rows := make([][]string, len(once))
	for i, r := range once {
		rows[i] = r
	}
	twice := Normalize(Reshape(rows))

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed rows:\n once  = %#v\n twice = %#v", once, twice)
	}
}

func TestNormalize_NeverGrows(t *testing.T) {
	raw := []RawRow{{"a"}, {}, {nil}, {"b", "c"}, {"", ""}}
	got := Normalize(raw)

	if len(got) > len(raw) {
		t.Fatalf("len = %d exceeds input %d", len(got), len(raw))
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 (three structurally empty rows)", len(got))
	}
	for i, row := range got {
		if len(row) != RowWidth {
			t.Errorf("row %d width = %d, want %d", i, len(row), RowWidth)
		}
	}
}

func TestCellText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{7, "7"},
		{int64(-3), "-3"},
		{float64(712345678), "712345678"},
		{0.25, "0.25"},
		{float32(2.5), "2.5"},
		{false, "false"},
	}
	for _, tt := range tests {
		if got := CellText(tt.in); got != tt.want {
			t.Errorf("CellText(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
