package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize user-entered titles and descriptions before they land in a
// draft: strip surrounding spaces, title-case, drop a trailing period
func CleanupString(s string) string {
	s = strings.TrimSpace(s)
	s = cases.Title(language.English).String(s)
	return strings.TrimSuffix(s, ".")
}

// Normalize a weekly schedule day code to the two-letter uppercase
// form stored on the wire ("mo", "Mon", "MONDAY" -> "MO")
func CleanupDayCode(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > 2 {
		s = s[:2]
	}
	return s
}
