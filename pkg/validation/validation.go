package validation

import (
	"regexp"
	"strings"
)

var (
	identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	keySafeRegex    = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)
)

// IsIdentifier reports whether s is safe to splice into SQL as a table,
// column or function name.
func IsIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// IsKeySafe reports whether s can appear as one cache key segment value
func IsKeySafe(s string) bool {
	return keySafeRegex.MatchString(s)
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	token := parts[len(parts)-1]
	if len(parts) == 2 && !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	if len(parts) > 2 {
		return "", false
	}
	return token, token != ""
}
