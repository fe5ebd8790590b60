package remaining

import (
	"time"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

// diff returns a minus b expressed as a fractional count of unit.
//
// Minutes and hours are elapsed time. Days and weeks are measured on the wall
// clock of a's and b's location so a DST change does not turn a day into
// 23 or 25 hours. Months and years follow the calendar.
func diff(a, b time.Time, unit domain.Unit) float64 {
	switch unit {
	case domain.UnitMinute:
		return float64(a.Sub(b)) / float64(time.Minute)
	case domain.UnitHour:
		return float64(a.Sub(b)) / float64(time.Hour)
	case domain.UnitDay:
		return float64(wallSub(a, b)) / float64(24*time.Hour)
	case domain.UnitWeek:
		return float64(wallSub(a, b)) / float64(7*24*time.Hour)
	case domain.UnitMonth:
		return monthsBetween(a, b)
	default:
		return monthsBetween(a, b) / 12
	}
}

func wallSub(a, b time.Time) time.Duration {
	_, aOffset := a.Zone()
	_, bOffset := b.Zone()
	return a.Sub(b) + time.Duration(aOffset-bOffset)*time.Second
}

// monthsBetween returns the calendar months from b to a. Whole months are
// counted by stepping b's day-of-month forward (clamped to the month's last
// day); the remainder is the fraction of the month that straddles a.
func monthsBetween(a, b time.Time) float64 {
	if a.Day() < b.Day() {
		return -monthsBetween(b, a)
	}

	whole := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	anchor := addMonths(a, whole)
	rest := b.Sub(anchor)

	var span time.Duration
	if rest < 0 {
		span = anchor.Sub(addMonths(a, whole-1))
	} else {
		span = addMonths(a, whole+1).Sub(anchor)
	}

	months := -(float64(whole) + float64(rest)/float64(span))
	if months == 0 {
		return 0
	}
	return months
}

// addMonths moves t by n calendar months, clamping the day to the length of
// the destination month (Jan 31 + 1 month is Feb 28 or 29).
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	first := time.Date(year, month+time.Month(n), 1, hour, minute, sec, t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
