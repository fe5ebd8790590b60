package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	deadlineTimezoneEnv      = "DEADLINE_TIMEZONE"
	deadlineLegacyPluralsEnv = "DEADLINE_LEGACY_PLURALS"

	defaultDeadlineTimezone = "UTC"
)

type DeadlineConfig struct {
	// Location is the timezone day and week boundaries are measured in and
	// absolute times are rendered in, unless a request overrides it.
	Location *time.Location
	// LegacyPlurals inflects like the web client: minute or minutes by
	// whether |magnitude| is below 2, and always the plural for other units.
	// Demotion keeps other units at a count of 2 or more, so a count of 1 is
	// always "1 minute".
	LegacyPlurals bool
}

func LoadDeadlineConfig() (*DeadlineConfig, error) {
	name := os.Getenv(deadlineTimezoneEnv)
	if name == "" {
		name = defaultDeadlineTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	legacy := false
	if v := os.Getenv(deadlineLegacyPluralsEnv); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLegacyPlurals, v)
		}
		legacy = parsed
	}

	return &DeadlineConfig{
		Location:      loc,
		LegacyPlurals: legacy,
	}, nil
}
