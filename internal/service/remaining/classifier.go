package remaining

import (
	"math"
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

// Bracket limits, in days. The month and year limits are fixed day counts
// (28 and 365) rather than calendar lengths.
const (
	MinuteBracketDays = 1.0 / 24
	HourBracketDays   = 1.0
	DayBracketDays    = 7.0
	WeekBracketDays   = 28.0
	MonthBracketDays  = 365.0
)

// DemotionLimit is the magnitude below which a unit is swapped for the next
// finer one ("1.4 weeks" reads as "9 days").
const DemotionLimit = 2.0

// Severity thresholds for the hour and day units, inclusive.
const (
	DangerHourLimit = 48.0
	DangerDayLimit  = 2.0
)

type bracket struct {
	unit  domain.Unit
	limit float64
}

var brackets = []bracket{
	{unit: domain.UnitMinute, limit: MinuteBracketDays},
	{unit: domain.UnitHour, limit: HourBracketDays},
	{unit: domain.UnitDay, limit: DayBracketDays},
	{unit: domain.UnitWeek, limit: WeekBracketDays},
	{unit: domain.UnitMonth, limit: MonthBracketDays},
}

// Pluralization selects how unit words are inflected in messages.
type Pluralization int

const (
	// PluralizeByCount uses the singular only when the displayed count is 1.
	PluralizeByCount Pluralization = iota
	// PluralizeLegacy picks minute/minutes by |magnitude| < 2 and always
	// pluralizes every other unit.
	PluralizeLegacy
)

// Classifier converts the distance between two instants into a DurationResult.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	loc     *time.Location
	plurals Pluralization
}

func NewClassifier(loc *time.Location, plurals Pluralization) *Classifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Classifier{
		loc:     loc,
		plurals: plurals,
	}
}

func (c *Classifier) Location() *time.Location {
	return c.loc
}

// WithLocation returns a classifier with the same pluralization that counts
// days and formats timestamps in loc.
func (c *Classifier) WithLocation(loc *time.Location) *Classifier {
	return NewClassifier(loc, c.plurals)
}

// Classify describes target relative to reference, which is normally the
// caller's "now". The result is overdue when reference is after target.
func (c *Classifier) Classify(target, reference time.Time) domain.DurationResult {
	return c.Between(target, reference)
}

// Between describes the distance from b to a with the same rules as Classify.
// It is used for comparisons where neither side is the current time, such as
// a completion time against a due date.
func (c *Classifier) Between(a, b time.Time) domain.DurationResult {
	a = a.In(c.loc)
	b = b.In(c.loc)

	unit := bracketUnit(math.Abs(diff(a, b, domain.UnitDay)))
	magnitude := diff(a, b, unit)
	if unit != domain.UnitMinute && math.Abs(magnitude) < DemotionLimit {
		unit = unit.Finer()
		magnitude = diff(a, b, unit)
	}

	overdue := b.After(a)
	severity := severityFor(unit, math.Abs(magnitude))
	if overdue {
		severity = domain.SeverityError
	}

	return domain.DurationResult{
		Overdue:   overdue,
		Unit:      unit,
		Magnitude: magnitude,
		Message:   c.message(unit, magnitude, overdue),
		Severity:  severity,
	}
}

func bracketUnit(absDays float64) domain.Unit {
	for _, br := range brackets {
		if absDays < br.limit {
			return br.unit
		}
	}
	return domain.UnitYear
}

func severityFor(unit domain.Unit, absMagnitude float64) domain.Severity {
	switch unit {
	case domain.UnitMinute:
		return domain.SeverityDanger
	case domain.UnitHour:
		return dangerWithin(absMagnitude, DangerHourLimit)
	case domain.UnitDay:
		return dangerWithin(absMagnitude, DangerDayLimit)
	default:
		return domain.SeverityInfo
	}
}

func dangerWithin(absMagnitude, limit float64) domain.Severity {
	if absMagnitude <= limit {
		return domain.SeverityDanger
	}
	return domain.SeverityWarn
}
