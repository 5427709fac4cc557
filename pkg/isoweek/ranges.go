package isoweek

import (
	"errors"
	"time"
)

// ErrStartAfterEnd is returned by WeekRange when start is after end.
var ErrStartAfterEnd = errors.New("start date is after end date")

// MonthEntry is one calendar month of a MonthRange.
type MonthEntry struct {
	Month int `json:"month" yaml:"month"`
	Year  int `json:"year" yaml:"year"`
}

// WeekEntry is one week of a WeekRange. Week is the ISO week number of the
// days it stands for and Year their calendar year, so the days of a week
// that straddles New Year produce two entries with the same Week.
type WeekEntry struct {
	Week int `json:"week" yaml:"week"`
	Year int `json:"year" yaml:"year"`
}

// DayEntry is one calendar day of a DayRange. Dow is 0 for Sunday through
// 6 for Saturday.
type DayEntry struct {
	Dow   int `json:"dow" yaml:"dow"`
	Week  int `json:"week" yaml:"week"`
	Day   int `json:"day" yaml:"day"`
	Month int `json:"month" yaml:"month"`
	Year  int `json:"year" yaml:"year"`
}

// HourEntry is one hour of an HourRange.
type HourEntry struct {
	Dow   int `json:"dow" yaml:"dow"`
	Hour  int `json:"hour" yaml:"hour"`
	Day   int `json:"day" yaml:"day"`
	Month int `json:"month" yaml:"month"`
	Year  int `json:"year" yaml:"year"`
	Week  int `json:"week" yaml:"week"`
}

// eachDay calls fn for every civil date from start's date to end's date.
func eachDay(start, end time.Time, fn func(d time.Time)) {
	last := civilDate(end)
	for d := civilDate(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// MonthRange lists every calendar month touched by [start, end].
func MonthRange(start, end time.Time) []MonthEntry {
	months := []MonthEntry{}

	y, m, _ := end.Date()
	last := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	y, m, _ = start.Date()
	for d := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC); !d.After(last); d = d.AddDate(0, 1, 0) {
		months = append(months, MonthEntry{Month: int(d.Month()), Year: d.Year()})
	}
	return months
}

// WeekRange lists the distinct (ISO week, calendar year) pairs of the days in
// [start, end] in chronological order.
func WeekRange(start, end time.Time) ([]WeekEntry, error) {
	if civilDate(start).After(civilDate(end)) {
		return nil, ErrStartAfterEnd
	}

	weeks := []WeekEntry{}
	seen := make(map[WeekEntry]bool)
	eachDay(start, end, func(d time.Time) {
		entry := WeekEntry{Week: Week(d), Year: d.Year()}
		if seen[entry] {
			return
		}
		seen[entry] = true
		weeks = append(weeks, entry)
	})
	return weeks, nil
}

// DayRange lists every calendar day in [start, end].
func DayRange(start, end time.Time) []DayEntry {
	days := []DayEntry{}
	eachDay(start, end, func(d time.Time) {
		days = append(days, DayEntry{
			Dow:   int(d.Weekday()),
			Week:  Week(d),
			Day:   d.Day(),
			Month: int(d.Month()),
			Year:  d.Year(),
		})
	})
	return days
}

// HourRange lists every hour from start, truncated to the hour, up to end.
// Hours are elapsed hours in start's location, so a DST change shows up as
// a repeated or skipped wall-clock hour.
func HourRange(start, end time.Time) []HourEntry {
	hours := []HourEntry{}

	loc := start.Location()
	end = end.In(loc)
	h := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, loc)
	for ; !h.After(end); h = h.Add(time.Hour) {
		hours = append(hours, HourEntry{
			Dow:   int(h.Weekday()),
			Hour:  h.Hour(),
			Day:   h.Day(),
			Month: int(h.Month()),
			Year:  h.Year(),
			Week:  Week(h),
		})
	}
	return hours
}
