package naming

import (
	"regexp"
	"strings"
)

const (
	// DigitPrefix is prepended when a sanitized name would start with a digit.
	DigitPrefix = "resource_"
	// Fallback is returned when nothing usable remains after sanitizing.
	Fallback = "unnamed_resource"
)

var invalidChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// Sanitize converts a display name into a valid resource identifier.
//
// Examples:
//   - "Engineering Team" -> "engineering_team"
//   - "3rd Party"        -> "resource_3rd_party"
//   - "!!!"              -> "unnamed_resource"
func Sanitize(raw string) string {
	sanitized := invalidChars.ReplaceAllString(raw, "_")
	sanitized = strings.ToLower(strings.Trim(sanitized, "_"))

	if sanitized == "" {
		return Fallback
	}
	if sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = DigitPrefix + sanitized
	}
	return sanitized
}
