package platform

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"
)

// readString reads a small text file (sysfs attribute, control node) through
// src and returns its trimmed contents, mapping failures into the taxonomy.
func readString(ctx context.Context, src Source, path string) (string, error) {
	data, err := src.ReadFile(ctx, path)
	if err != nil {
		return "", FromOSError(path, err)
	}
	if !utf8.Valid(data) {
		return "", Other(path+" is not valid UTF-8", nil)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", NotAvailable(path + " is empty")
	}
	return value, nil
}

// readUint reads an unsigned integer attribute through src.
func readUint(ctx context.Context, src Source, path string) (uint64, error) {
	s, err := readString(ctx, src, path)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, Other("malformed value in "+path, err)
	}
	return value, nil
}

// firstExisting returns the first of paths that exists, or the last one so
// that the subsequent read reports a meaningful "does not exist".
func firstExisting(ctx context.Context, src Source, paths ...string) string {
	for _, p := range paths {
		if src.Exists(ctx, p) {
			return p
		}
	}
	return paths[len(paths)-1]
}

// normalizeWord lower-cases and trims s for keyword comparisons.
func normalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// capitalize upper-cases the first letter of s, or all of it for short
// acronyms such as "x11".
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if len(s) <= 3 {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
