package utils

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Sanitize neutralizes markup in free-text input before storage: tags are
// stripped, then the remainder is HTML-escaped.  This is input cleansing
// for display purposes, not a security boundary; SQL safety comes from
// parameterized queries.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(tagPattern.ReplaceAllString(s, "")))
}
