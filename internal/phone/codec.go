// Package phone provides phone number canonicalization and the dual
// cryptographic representation used for privacy-preserving dedup and
// authorized reveal.
package phone

import "strings"

// Normalize converts raw phone input to canonical international format.
//
// Recommender-entered and provider-entered numbers arrive from different UI
// flows with inconsistent formatting (local digits only vs. full
// international). A single canonicalization point guarantees the identity hash
// always sees the same representation, which is the only way dedup-by-hash
// can work.
//
// Rules: all whitespace is stripped; input already starting with "+" is kept
// as-is; anything else has its non-digit characters removed and the default
// country prefix prepended. Input with no digits at all canonicalizes to the
// empty string, which callers must reject via IsValid before hashing.
// Normalize never fails and is idempotent.
func Normalize(raw, defaultPrefix string) string {
	s := stripWhitespace(raw)
	if strings.HasPrefix(s, "+") {
		return s
	}

	digits := stripNonDigits(s)
	if digits == "" {
		return ""
	}
	return defaultPrefix + digits
}

// IsValid reports whether a canonical phone is usable for hashing and
// encryption: a leading "+" followed by at least one digit.
func IsValid(canonical string) bool {
	if len(canonical) < 2 || canonical[0] != '+' {
		return false
	}
	for i := 1; i < len(canonical); i++ {
		if canonical[i] >= '0' && canonical[i] <= '9' {
			return true
		}
	}
	return false
}

// stripWhitespace removes spaces, tabs and other ASCII whitespace.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return -1
		}
		return r
	}, s)
}

// stripNonDigits keeps only the characters 0-9.
func stripNonDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return -1
		}
		return r
	}, s)
}
