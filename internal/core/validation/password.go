package validation

import (
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	passwordSymbols   = `!@#$%^&*(),.?":{}|<>`
)

// PasswordViolations evaluates every password rule independently and returns
// one message per unmet rule, in a fixed order.
func PasswordViolations(password string) []string {
	var upper, lower, digit, symbol bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		}
		if strings.ContainsRune(passwordSymbols, c) {
			symbol = true
		}
	}

	var out []string
	if len([]rune(password)) < minPasswordLength {
		out = append(out, "password must be at least 8 characters")
	}
	if !upper {
		out = append(out, "password must contain at least one uppercase letter")
	}
	if !lower {
		out = append(out, "password must contain at least one lowercase letter")
	}
	if !digit {
		out = append(out, "password must contain at least one number")
	}
	if !symbol {
		out = append(out, "password must contain at least one special character")
	}
	return out
}
