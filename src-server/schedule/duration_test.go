package schedule_test

import (
	"testing"
	"time"

	"nostrcal/src-server/schedule"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"PT30M":      30 * time.Minute,
		"PT1H":       time.Hour,
		"PT1H30M":    90 * time.Minute,
		"P1D":        24 * time.Hour,
		"P2W":        14 * 24 * time.Hour,
		"P1DT2H30M":  26*time.Hour + 30*time.Minute,
		"PT90S":      90 * time.Second,
		"PT0.5H":     30 * time.Minute,
	}
	for raw, want := range cases {
		got, err := schedule.ParseDuration(raw)
		if err != nil {
			t.Error(raw, err)
			continue
		}
		if got != want {
			t.Error(raw, "want", want, "got", got)
		}
	}

	// case: malformed durations fail
	for _, raw := range []string{"", "P", "PT", "30M", "P1Y", "P1M", "PTXM"} {
		if _, err := schedule.ParseDuration(raw); err == nil {
			t.Error("should not parse", raw)
		}
	}
}
