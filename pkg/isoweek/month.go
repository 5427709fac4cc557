package isoweek

import (
	"fmt"
	"strings"
	"time"
)

// WeekStart selects the weekday that opens a span in WeeksInMonth.
// It never changes the ISO week numbering itself, which is Monday based.
type WeekStart time.Weekday

const (
	Monday = WeekStart(time.Monday)
	Sunday = WeekStart(time.Sunday)
)

// ParseWeekStart accepts "monday" or "sunday" (case-insensitive).
// An empty string means Monday.
func ParseWeekStart(s string) (WeekStart, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday", "mon":
		return Monday, nil
	case "sunday", "sun":
		return Sunday, nil
	default:
		return Monday, fmt.Errorf("week start must be 'monday' or 'sunday', got '%s'", s)
	}
}

func (ws WeekStart) String() string {
	return strings.ToLower(time.Weekday(ws).String())
}

// WeekSpan is the part of one ISO week that overlaps a calendar month.
//
// Start and End are days of the month. Week and Year identify the ISO week
// of the span's first day, Year being the ISO week-year. DaysInWeek holds the
// whole ISO week, which may spill into the neighbouring months or years.
type WeekSpan struct {
	Start      int          `json:"start" yaml:"start"`
	End        int          `json:"end" yaml:"end"`
	Week       int          `json:"week" yaml:"week"`
	Year       int          `json:"year" yaml:"year"`
	DaysInWeek [7]time.Time `json:"days_in_week" yaml:"days_in_week"`
}

// Ref returns the ISO week of the span.
func (s WeekSpan) Ref() WeekRef {
	return WeekRef{Week: s.Week, Year: s.Year}
}

// Days returns the number of month days covered by the span.
func (s WeekSpan) Days() int {
	return s.End - s.Start + 1
}

// WeeksInMonth partitions month of year into consecutive week spans.
//
// The first span runs from day 1 to the day before the next start day, every
// following span covers seven days and the last is clipped to the month's
// final day. Month and year are normalized the way time.Date does.
func WeeksInMonth(month, year int, start WeekStart) []WeekSpan {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	offset := (int(first.Weekday()) - int(start) + 7) % 7
	end := 1 + 6 - offset

	var spans []WeekSpan
	for begin := 1; begin <= lastDay; begin = end + 1 {
		if begin > 1 {
			end = begin + 6
		}
		if end > lastDay {
			end = lastDay
		}

		ref := Ref(first.AddDate(0, 0, begin-1))
		// ref always comes from a real date, so DaysInWeek cannot fail.
		days, _ := DaysInWeek(ref.Week, ref.Year)

		spans = append(spans, WeekSpan{
			Start:      begin,
			End:        end,
			Week:       ref.Week,
			Year:       ref.Year,
			DaysInWeek: days,
		})
	}
	return spans
}
