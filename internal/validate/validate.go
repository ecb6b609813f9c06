// Package validate holds the field checks shared by the edit form and the
// local user API.
package validate

import (
	"regexp"
	"unicode/utf8"
)

const (
	MinNameLen     = 3
	MinPasswordLen = 6
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailRegexp.MatchString(s)
}

// Password reports whether s is long enough to be accepted.
func Password(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLen
}

// Name reports whether s has at least MinNameLen characters.
func Name(s string) bool {
	return utf8.RuneCountInString(s) >= MinNameLen
}
