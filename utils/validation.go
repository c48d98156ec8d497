// utils/validation.go
package utils

import (
	"net/mail"
	"regexp"
	"strings"
)

// Allows + prefix followed by 2-15 digits, no leading zero
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var phoneReplacer = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// NormalizePhone strips formatting characters from a phone number.
func NormalizePhone(phone string) string {
	return phoneReplacer.Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

func ValidateEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
