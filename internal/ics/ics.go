// Package ics exports ISO weeks as iCalendar all-day events.
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/username/weekcal/pkg/isoweek"
)

const (
	productID = "-//weekcal//ISO weeks//EN"
	uidDomain = "weekcal"
)

// Exporter builds week calendars
type Exporter struct {
	logger *zap.Logger
	// now stamps DTSTAMP on every event
	now func() time.Time
}

// NewExporter creates an exporter stamping events with the current time
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{
		logger: logger,
		now:    time.Now,
	}
}

// UID returns the stable event identifier of an ISO week, e.g. "2021-W28@weekcal"
func UID(ref isoweek.WeekRef) string {
	return ref.String() + "@" + uidDomain
}

// WeeksCalendar returns a calendar with one event for every ISO week of year
func (e *Exporter) WeeksCalendar(year int) *ical.Calendar {
	cal := newCalendar(fmt.Sprintf("ISO weeks %d", year))
	stamp := e.now().UTC()

	n := isoweek.WeeksInYear(year)
	for week := 1; week <= n; week++ {
		// week is within 1..WeeksInYear(year)
		days, _ := isoweek.DaysInWeek(week, year)
		addWeek(cal, isoweek.WeekRef{Week: week, Year: year}, days, stamp)
	}

	e.logger.Debug("Built year calendar",
		zap.Int("year", year),
		zap.Int("weeks", n))

	return cal
}

// MonthCalendar returns a calendar with one event for every ISO week that
// overlaps month of year. Events always cover the whole week.
func (e *Exporter) MonthCalendar(month, year int, start isoweek.WeekStart) *ical.Calendar {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	cal := newCalendar(fmt.Sprintf("ISO weeks %s", first.Format("January 2006")))
	stamp := e.now().UTC()

	seen := make(map[isoweek.WeekRef]bool)
	spans := isoweek.WeeksInMonth(month, year, start)
	for _, span := range spans {
		// A Sunday-started span can reach into the next ISO week.
		for _, ref := range spanWeeks(first, span) {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			days, _ := isoweek.DaysInWeek(ref.Week, ref.Year)
			addWeek(cal, ref, days, stamp)
		}
	}

	e.logger.Debug("Built month calendar",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("events", len(seen)))

	return cal
}

func spanWeeks(first time.Time, span isoweek.WeekSpan) []isoweek.WeekRef {
	refs := []isoweek.WeekRef{span.Ref()}
	last := isoweek.Ref(first.AddDate(0, 0, span.End-1))
	if last != span.Ref() {
		refs = append(refs, last)
	}
	return refs
}

func newCalendar(name string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)
	return cal
}

func addWeek(cal *ical.Calendar, ref isoweek.WeekRef, days [7]time.Time, stamp time.Time) {
	event := cal.AddEvent(UID(ref))
	event.SetDtStampTime(stamp)
	event.SetAllDayStartAt(days[0])
	event.SetAllDayEndAt(days[6].AddDate(0, 0, 1))
	event.SetSummary(fmt.Sprintf("Week %d", ref.Week))
	event.SetDescription(fmt.Sprintf("%s: %s - %s",
		ref, days[0].Format("2 Jan 2006"), days[6].Format("2 Jan 2006")))
}

// Write serializes cal to w
func Write(w io.Writer, cal *ical.Calendar) error {
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
