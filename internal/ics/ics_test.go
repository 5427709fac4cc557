package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/weekcal/pkg/isoweek"
)

var stamp = time.Date(2021, 7, 15, 12, 0, 0, 0, time.UTC)

func newTestExporter() *Exporter {
	e := NewExporter(zap.NewNop())
	e.now = func() time.Time { return stamp }
	return e
}

func roundTrip(t *testing.T, cal *ical.Calendar) []*ical.VEvent {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cal))

	parsed, err := ical.ParseCalendar(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return parsed.Events()
}

func prop(ev *ical.VEvent, name ical.ComponentProperty) string {
	p := ev.GetProperty(name)
	if p == nil {
		return ""
	}
	return p.Value
}

func TestUID(t *testing.T) {
	assert.Equal(t, "2021-W05@weekcal", UID(isoweek.WeekRef{Week: 5, Year: 2021}))
}

func TestWeeksCalendar(t *testing.T) {
	tests := []struct {
		year      int
		wantCount int
		wantFirst string
		wantLast  string
	}{
		{2020, 53, "20191230", "20201228"},
		{2021, 52, "20210104", "20211227"},
	}

	for _, tt := range tests {
		t.Run(time.Date(tt.year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006"), func(t *testing.T) {
			events := roundTrip(t, newTestExporter().WeeksCalendar(tt.year))
			require.Len(t, events, tt.wantCount)

			first, last := events[0], events[len(events)-1]
			assert.Equal(t, tt.wantFirst, prop(first, ical.ComponentPropertyDtStart))
			assert.Equal(t, tt.wantLast, prop(last, ical.ComponentPropertyDtStart))
			assert.Equal(t, "Week 1", prop(first, ical.ComponentPropertySummary))
			assert.Equal(t, UID(isoweek.WeekRef{Week: 1, Year: tt.year}), first.Id())
		})
	}
}

func TestWeeksCalendar_EventsSpanWholeWeeks(t *testing.T) {
	events := roundTrip(t, newTestExporter().WeeksCalendar(2021))

	for _, ev := range events {
		start, err := ev.GetAllDayStartAt()
		require.NoError(t, err)
		end, err := ev.GetAllDayEndAt()
		require.NoError(t, err)

		assert.Equal(t, time.Monday, start.Weekday(), ev.Id())
		assert.Equal(t, 7, int(end.Sub(start).Hours()/24), ev.Id())
		assert.Equal(t, "20210715T120000Z", prop(ev, ical.ComponentPropertyDtstamp))
	}
}

func TestMonthCalendar(t *testing.T) {
	events := roundTrip(t, newTestExporter().MonthCalendar(12, 2024, isoweek.Monday))
	require.Len(t, events, 6)

	var ids []string
	for _, ev := range events {
		ids = append(ids, ev.Id())
	}
	assert.Equal(t, []string{
		"2024-W48@weekcal",
		"2024-W49@weekcal",
		"2024-W50@weekcal",
		"2024-W51@weekcal",
		"2024-W52@weekcal",
		"2025-W01@weekcal",
	}, ids)

	assert.Equal(t, "20241125", prop(events[0], ical.ComponentPropertyDtStart))
	assert.Equal(t, "20241202", prop(events[0], ical.ComponentPropertyDtEnd))
	assert.Equal(t, "Week 1", prop(events[5], ical.ComponentPropertySummary))
}

func TestMonthCalendar_SundayStartCoversSameWeeks(t *testing.T) {
	monday := roundTrip(t, newTestExporter().MonthCalendar(8, 2021, isoweek.Monday))
	sunday := roundTrip(t, newTestExporter().MonthCalendar(8, 2021, isoweek.Sunday))

	idsOf := func(events []*ical.VEvent) []string {
		var ids []string
		for _, ev := range events {
			ids = append(ids, ev.Id())
		}
		return ids
	}

	assert.Equal(t, idsOf(monday), idsOf(sunday))
	assert.Equal(t, "2021-W30@weekcal", idsOf(sunday)[0])
	assert.Equal(t, "2021-W35@weekcal", idsOf(sunday)[len(sunday)-1])
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, newTestExporter().WeeksCalendar(2021)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "PRODID:"+productID)
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "UID:2021-W28@weekcal")
	assert.Contains(t, out, "SUMMARY:Week 28")
}
