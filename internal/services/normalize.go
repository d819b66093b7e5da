// Package services defines the business logic for the lead intake
// pipeline. This file holds the contact fingerprint normalization: the
// (phone, email) pair is the identity used for duplicate detection, so
// every component must see the same canonical form.
package services

import (
	"regexp"
	"strings"
)

// nonDigitRE strips everything but digits from a phone value.
var nonDigitRE = regexp.MustCompile(`\D+`)

// emailRE is a pragmatic shape check, not an RFC 5322 validator.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// NormalizeMobile reduces a phone value to its ten-digit national number:
// non-digits are stripped, then a recognized country prefix ("91" on a
// twelve-digit value) or trunk zero (on an eleven-digit value) is removed.
// Values that still are not ten digits are returned digits-only and left
// for ValidMobile to reject.
func NormalizeMobile(raw string) string {
	digits := nonDigitRE.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return digits[1:]
	default:
		return digits
	}
}

// NormalizeEmail trims and lower-cases an email address. It normalizes
// only; shape checking is ValidEmail's job.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidMobile reports whether a normalized mobile is a ten-digit number.
func ValidMobile(mobile string) bool {
	return len(mobile) == 10
}

// ValidEmail reports whether a normalized email has a plausible shape.
func ValidEmail(email string) bool {
	return emailRE.MatchString(email)
}
