package services

import (
	"net/mail"
	"regexp"
	"strings"
)

// emailShapePattern is the shape check applied at registration on top of net/mail parsing.
var emailShapePattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// NormalizeAuthEmail lower-cases and trims an address, or returns "" if it is not one.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailShapePattern.MatchString(email) {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}
