// Package sanitize escapes user-supplied text and checks user-supplied URLs.
package sanitize

import (
	"regexp"
	"strings"
)

// htmlReplacer escapes the five markup-significant characters. A Replacer
// makes a single pass, so entities it produces are never escaped again.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var urlPattern = regexp.MustCompile(`^https?://.+`)

// Escape replaces &, <, >, " and ' with character references. It must be
// applied exactly once to each field before it is stored.
func Escape(s string) string {
	return htmlReplacer.Replace(s)
}

// ValidateURL reports whether s is empty or an http(s) URL.
func ValidateURL(s string) bool {
	return s == "" || urlPattern.MatchString(s)
}
