// Package validation holds the field-format predicates used by the
// registration wizard and the HTTP payloads. Every predicate is total over
// raw string input.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
)

const (
	individualTaxIDDigits = 11
	corporateTaxIDDigits  = 14
	phoneDigits           = 11
	postalCodeDigits      = 8
	// InvoiceNameMaxLen bounds the name printed on the customer's card statement.
	InvoiceNameMaxLen = 12
)

var (
	urlPattern   = regexp.MustCompile(`^https?://[^\s/$.?#][^\s/]*\.[^\s]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Digits strips every non-digit rune.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidIndividualTaxID reports whether s carries exactly 11 digits (CPF).
func ValidIndividualTaxID(s string) bool {
	return len(Digits(s)) == individualTaxIDDigits
}

// ValidCorporateTaxID reports whether s carries exactly 14 digits (CNPJ).
func ValidCorporateTaxID(s string) bool {
	return len(Digits(s)) == corporateTaxIDDigits
}

// ValidTaxID dispatches on the business type. Unknown types never validate.
func ValidTaxID(bt domain.BusinessType, s string) bool {
	switch bt {
	case domain.BusinessIndividual:
		return ValidIndividualTaxID(s)
	case domain.BusinessCorporate:
		return ValidCorporateTaxID(s)
	default:
		return false
	}
}

// ValidFullName requires at least two whitespace-separated tokens.
func ValidFullName(s string) bool {
	return len(strings.Fields(s)) >= 2
}

// ValidURL accepts http(s) URLs whose host contains a dot.
func ValidURL(s string) bool {
	return urlPattern.MatchString(strings.TrimSpace(s))
}

// ValidEmail accepts the local@domain.tld shape with no embedded whitespace.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone accepts an 11-digit Brazilian mobile number.
func ValidPhone(s string) bool {
	return len(Digits(s)) == phoneDigits
}

// ValidPostalCode accepts an 8-digit CEP.
func ValidPostalCode(s string) bool {
	return len(Digits(s)) == postalCodeDigits
}

// ValidInvoiceName requires a non-blank name of at most InvoiceNameMaxLen runes.
func ValidInvoiceName(s string) bool {
	n := len([]rune(s))
	return strings.TrimSpace(s) != "" && n <= InvoiceNameMaxLen
}

// Strength is the password strength classification.
type Strength string

const (
	StrengthNone   Strength = "none"
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// AtLeast reports whether s is as strong as min.
func (s Strength) AtLeast(min Strength) bool {
	return strengthRank[s] >= strengthRank[min]
}

var strengthRank = map[Strength]int{
	StrengthNone:   0,
	StrengthWeak:   1,
	StrengthMedium: 2,
	StrengthStrong: 3,
}

// PasswordStrength classifies a password. The criteria are length > 5,
// uppercase, lowercase, digit and symbol. All four character classes make it
// strong; any three criteria make it medium. An empty password is none so an
// untouched field shows no error.
func PasswordStrength(password string) Strength {
	if password == "" {
		return StrengthNone
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			symbol = true
		}
	}

	if upper && lower && digit && symbol {
		return StrengthStrong
	}

	score := 0
	for _, ok := range []bool{len([]rune(password)) > 5, upper, lower, digit, symbol} {
		if ok {
			score++
		}
	}
	if score >= 3 {
		return StrengthMedium
	}
	return StrengthWeak
}
