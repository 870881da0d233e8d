package core

import "strings"

// Length bounds for an international number, in digits.
const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

// Inference is the outcome of CountryCodeRule.Apply.
type Inference int

const (
	// Unchanged means the digits were returned as given.
	Unchanged Inference = iota
	// CountryCodeAdded means the rule prepended its country code.
	CountryCodeAdded
)

func (i Inference) String() string {
	if i == CountryCodeAdded {
		return "country_code_added"
	}
	return "unchanged"
}

// CountryCodeRule completes local numbers that arrive without a country code.
//
// A number qualifies when it has exactly LocalLength digits and its first
// digit is one of LocalPrefixes. The default rule targets Kenyan mobiles:
// "7xxxxxxxx" is a local number without its 254 prefix, and "1xxxxxxxx" is a
// "01x" number whose leading zero was dropped by spreadsheet numeric coercion.
type CountryCodeRule struct {
	CountryCode   string
	LocalLength   int
	LocalPrefixes string
}

// DefaultCountryCodeRule is the rule used when none is configured.
var DefaultCountryCodeRule = CountryCodeRule{
	CountryCode:   "254",
	LocalLength:   9,
	LocalPrefixes: "17",
}

// Apply returns digits with the country code prepended when the rule
// matches. It is applied at most once per number.
func (r CountryCodeRule) Apply(digits string) (string, Inference) {
	if r.CountryCode == "" || r.LocalLength <= 0 || len(digits) != r.LocalLength {
		return digits, Unchanged
	}
	if !strings.ContainsRune(r.LocalPrefixes, rune(digits[0])) {
		return digits, Unchanged
	}
	return r.CountryCode + digits, CountryCodeAdded
}

// SanitizePhone strips every character that is not an ASCII digit.
func SanitizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
