// Package cpf validates, cleans and formats Brazilian CPF numbers
// (11-digit taxpayer IDs with two trailing check digits).
package cpf

import "strings"

const digits = 11

// Clean strips every non-digit character from s. Empty input passes through.
func Clean(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format applies the conventional xxx.xxx.xxx-xx mask when the cleaned value
// has exactly 11 digits. Anything else is returned unchanged.
func Format(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	c := Clean(s)
	if len(c) != digits {
		return s
	}
	return c[0:3] + "." + c[3:6] + "." + c[6:9] + "-" + c[9:11]
}

// IsValid reports whether s is a well-formed CPF. Punctuation is ignored.
// Sequences of a single repeated digit are known-invalid and rejected even
// though their checksum happens to hold.
func IsValid(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}

	c := Clean(s)
	if len(c) != digits {
		return false
	}

	allEqual := true
	for i := 1; i < digits; i++ {
		if c[i] != c[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	// First check digit: weighted sum of digits 0..8 with weights 10..2.
	if checkDigit(c, 9, 10) != int(c[9]-'0') {
		return false
	}
	// Second check digit: weighted sum of digits 0..9 with weights 11..2.
	return checkDigit(c, 10, 11) == int(c[10]-'0')
}

func checkDigit(c string, n, firstWeight int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(c[i]-'0') * (firstWeight - i)
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}
