package remaining

import (
	"math"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

const (
	timestampLayout = "1/2/2006 3:04 PM MST"
	dayLayout       = "1/2/2006"
)

func (c *Classifier) message(unit domain.Unit, magnitude float64, overdue bool) string {
	count := math.Abs(math.Floor(magnitude))

	word := unit.Plural()
	switch c.plurals {
	case PluralizeLegacy:
		if unit == domain.UnitMinute && math.Abs(magnitude) < DemotionLimit {
			word = unit.String()
		}
	default:
		if count == 1 {
			word = unit.String()
		}
	}

	direction := "remaining"
	if overdue {
		direction = "overdue"
	}

	return strconv.FormatFloat(count, 'f', 0, 64) + " " + word + " " + direction
}

// FormatTimestamp renders t in loc as e.g. "1/2/2024 3:04 PM KST".
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(timestampLayout)
}

// FormatDay renders only the calendar date of t in loc, for all-day items.
func FormatDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayLayout)
}

// Format picks FormatDay for all-day items and FormatTimestamp otherwise.
func (c *Classifier) Format(t time.Time, allDay bool) string {
	if allDay {
		return FormatDay(t, c.loc)
	}
	return FormatTimestamp(t, c.loc)
}
