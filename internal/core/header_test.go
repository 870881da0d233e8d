package core

import "testing"

func TestIsHeaderRow(t *testing.T) {
	tests := []struct {
		row  NormalizedRow
		want bool
	}{
		{NormalizedRow{"Name", "Phone"}, true},
		{NormalizedRow{"FULL NAME", "Mobile"}, true},
		{NormalizedRow{"Contact", "Telephone"}, true},
		{NormalizedRow{"Phone", "Who"}, true},
		{NormalizedRow{"Who", "phone number"}, true},
		{NormalizedRow{"Contact", "Mobile"}, false},
		{NormalizedRow{"Alice", "0712345678"}, false},
		// Heuristic: a person literally named "Nameless" reads as a header.
		{NormalizedRow{"Nameless", "712345678"}, true},
		{NormalizedRow{"Name"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsHeaderRow(tt.row); got != tt.want {
			t.Errorf("IsHeaderRow(%q) = %v, want %v", tt.row, got, tt.want)
		}
	}
}
