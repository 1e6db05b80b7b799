package platform

import (
	"strings"
	"unicode"
)

// shellEscape quotes s for a POSIX shell. Single quotes inside s are closed,
// escaped and reopened, so the result is always one literal word.
func shellEscape(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// shellCommand joins name and args into one command line with every word
// quoted.
func shellCommand(name string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, shellEscape(name))
	for _, a := range args {
		words = append(words, shellEscape(a))
	}
	return strings.Join(words, " ")
}

// validatePath reports whether path is an absolute path without traversal
// components or control characters. Remote readers only touch well-known
// virtual-filesystem locations.
func validatePath(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return false
		}
	}
	for _, c := range path {
		if unicode.IsControl(c) {
			return false
		}
	}
	return true
}

// validCommandName reports whether name is a bare executable name.
func validCommandName(name string) bool {
	if name == "" || strings.HasPrefix(name, "-") {
		return false
	}
	for _, c := range name {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '-' || c == '_' || c == '.' || c == '+') {
			return false
		}
	}
	return true
}
