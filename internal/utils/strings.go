package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail checks the local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(NormalizeEmail(email))
}

// PhoneDigits strips every non-digit character from a phone number.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone accepts digits, spaces, dashes, plus and parentheses, and
// requires at least ten digits once separators are stripped.
func IsValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r), r == ' ', r == '-', r == '+', r == '(', r == ')':
		default:
			return false
		}
	}
	return len(PhoneDigits(phone)) >= 10
}

// IsValidContact accepts either an email address or a bare phone number of
// seven to fifteen digits, the contact form's looser rule.
func IsValidContact(contact string) bool {
	contact = strings.TrimSpace(contact)
	if IsValidEmail(contact) {
		return true
	}
	digits := PhoneDigits(contact)
	return digits == contact && len(digits) >= 7 && len(digits) <= 15
}
