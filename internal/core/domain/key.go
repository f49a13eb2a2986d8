package domain

import (
	"path"
	"regexp"
	"strings"
)

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeID reduces a user or system identifier to the character class
// [A-Za-z0-9_-]. Identifiers become path segments under the saves root, so
// anything else is stripped before path construction. This is a security
// contract: no save may land outside the saves root.
func SanitizeID(s string) string {
	return unsafeIDChars.ReplaceAllString(s, "")
}

// SanitizeGameName reduces a game name to its base filename component,
// discarding directory separators and traversal sequences. Same contract as
// SanitizeID.
func SanitizeGameName(s string) string {
	s = strings.ReplaceAll(s, `\`, "/")
	s = path.Base(s)
	if s == "." || s == ".." || s == "/" {
		return ""
	}
	return s
}
