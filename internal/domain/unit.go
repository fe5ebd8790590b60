package domain

// Unit is the granularity a DurationResult is expressed in.
type Unit string

const (
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
	UnitWeek   Unit = "week"
	UnitMonth  Unit = "month"
	UnitYear   Unit = "year"
)

func (u Unit) String() string {
	return string(u)
}

// Finer returns the unit a magnitude is demoted to when it is too small to
// read well in u. Minute is the finest unit and returns itself.
func (u Unit) Finer() Unit {
	switch u {
	case UnitYear:
		return UnitMonth
	case UnitMonth:
		return UnitWeek
	case UnitWeek:
		return UnitDay
	case UnitDay:
		return UnitHour
	default:
		return UnitMinute
	}
}

func (u Unit) Plural() string {
	return string(u) + "s"
}

func (u Unit) IsValid() bool {
	switch u {
	case UnitMinute, UnitHour, UnitDay, UnitWeek, UnitMonth, UnitYear:
		return true
	}
	return false
}
