package dateutil

import (
	"time"

	"github.com/username/weekcal/pkg/isoweek"
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// EndOfDay returns the end of the day (23:59:59.999) for the given date
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999999999, date.Location())
}

// StartOfWeek returns the Monday of the ISO week for the given date
func StartOfWeek(date time.Time) time.Time {
	daysFromMonday := (int(date.Weekday()) + 6) % 7
	return StartOfDay(AddDays(date, -daysFromMonday))
}

// EndOfWeek returns the end of the Sunday closing the ISO week
func EndOfWeek(date time.Time) time.Time {
	return EndOfDay(AddDays(StartOfWeek(date), 6))
}

// AddDays moves date by n calendar days keeping the wall clock,
// so a DST change never shifts the hour.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// DaysInMonth returns the number of days in month of year
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsSameWeek returns true if two dates are in the same ISO week
func IsSameWeek(date1, date2 time.Time) bool {
	return isoweek.Ref(date1) == isoweek.Ref(date2)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// Age returns the number of whole years between birth and at.
// The order of the arguments does not matter.
func Age(birth, at time.Time) int {
	if at.Before(birth) {
		birth, at = at, birth
	}
	at = at.In(birth.Location())

	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	return years
}
