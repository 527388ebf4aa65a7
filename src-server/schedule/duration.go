package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// Parse an ISO-8601 duration (P1D, PT30M, P2W, P1DT2H30M, ...) into a
// time.Duration. Days count as 24h and weeks as 7 days; year/month
// designators are rejected since availability parameters never carry
// them and they have no fixed length.
func ParseDuration(raw string) (time.Duration, error) {
	if raw == "" || raw == "P" || raw == "PT" {
		return 0, fmt.Errorf("ParseDuration: blank duration")
	}
	if !strings.HasPrefix(raw, "P") {
		return 0, fmt.Errorf("ParseDuration: missing P designator: %q", raw)
	}
	parsed, err := duration.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("ParseDuration: %q: %w", raw, err)
	}
	if parsed.Years != 0 || parsed.Months != 0 {
		return 0, fmt.Errorf("ParseDuration: year/month designators are not supported: %q", raw)
	}
	return parsed.ToTimeDuration(), nil
}

// Parse with a fallback for absent or malformed values
func durationOr(raw string, fallback time.Duration) time.Duration {
	parsed, err := ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
