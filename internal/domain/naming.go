package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// CamelToHyphen inserts a hyphen between every lowercase letter and the
// uppercase letter that follows it, then lowercases the result.
// Acronyms and digits get no special treatment: "PlayerJoinEvent" becomes
// "player-join-event" and "HTTPServer" becomes "httpserver".
func CamelToHyphen(text string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(text, "${1}-${2}"))
}

// lowerFirst lowercases the first character only.
func lowerFirst(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return text
	}

	return string(unicode.ToLower(r)) + text[size:]
}
