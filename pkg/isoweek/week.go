// Package isoweek implements ISO-8601 week-date arithmetic: week numbers,
// week-years, the Monday of a given week, month partitioning into weeks and
// calendar range enumeration.
//
// All functions are pure. Inputs are interpreted by their civil date in their
// own location; day arithmetic is done on UTC midnights so daylight saving
// transitions never shift a result by a day.
package isoweek

import (
	"errors"
	"fmt"
	"time"
)

const day = 24 * time.Hour

// ErrInvalidWeek is matched by every *RangeError.
var ErrInvalidWeek = errors.New("invalid ISO week")

// RangeError reports a week number outside [1, WeeksInYear(Year)].
type RangeError struct {
	Week        int
	Year        int
	WeeksInYear int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid week %d for year %d: year has %d ISO weeks",
		e.Week, e.Year, e.WeeksInYear)
}

// Is makes errors.Is(err, ErrInvalidWeek) work.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidWeek
}

// WeekRef identifies an ISO week. Year is the ISO week-year.
type WeekRef struct {
	Week int `json:"week" yaml:"week"`
	Year int `json:"year" yaml:"year"`
}

func (r WeekRef) String() string {
	return fmt.Sprintf("%d-W%02d", r.Year, r.Week)
}

// civilDate returns midnight UTC of t's calendar date in t's location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isoWeekday returns 0 for Monday through 6 for Sunday.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// thursdayOf returns the Thursday of the Monday-starting week containing d.
func thursdayOf(d time.Time) time.Time {
	return d.AddDate(0, 0, 3-isoWeekday(d))
}

// ISOWeek returns the ISO week-year and week number of t.
//
// The week-year is the year of the Thursday of t's week, so December 29-31
// can belong to week 1 of the next year and January 1-3 to week 52 or 53 of
// the previous one.
func ISOWeek(t time.Time) (year, week int) {
	thursday := thursdayOf(civilDate(t))
	year = thursday.Year()

	anchor := thursdayOf(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC))
	days := int(thursday.Sub(anchor) / day)
	return year, days/7 + 1
}

// Week returns the ISO week number (1-53) of t.
func Week(t time.Time) int {
	_, week := ISOWeek(t)
	return week
}

// Ref returns the ISO week reference of t.
func Ref(t time.Time) WeekRef {
	year, week := ISOWeek(t)
	return WeekRef{Week: week, Year: year}
}

// CurrentWeek returns the ISO week number of the current local time.
func CurrentWeek() int {
	return Week(time.Now())
}

// WeeksInYear returns 52 or 53, the number of ISO weeks in year.
// December 28 always falls in the last week of its own week-year.
func WeeksInYear(year int) int {
	return Week(time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC))
}

// DateOfISOWeek returns the Monday (midnight UTC) of the given ISO week.
// It fails with a *RangeError when week is outside [1, WeeksInYear(year)].
func DateOfISOWeek(week, year int) (time.Time, error) {
	maxWeek := WeeksInYear(year)
	if week < 1 || week > maxWeek {
		return time.Time{}, &RangeError{Week: week, Year: year, WeeksInYear: maxWeek}
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, -isoWeekday(jan4))
	return week1Monday.AddDate(0, 0, (week-1)*7), nil
}

// DaysInWeek returns the seven days of the ISO week, Monday first.
func DaysInWeek(week, year int) ([7]time.Time, error) {
	var days [7]time.Time

	monday, err := DateOfISOWeek(week, year)
	if err != nil {
		return days, err
	}

	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days, nil
}
