package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat controls FormatDate, FormatDateCompact and FormatTime.
type DateFormat struct {
	ShowSeconds  bool
	ShowTimezone bool
	DateOnly     bool
	// Separator between date and time. A single space when empty.
	Separator string
}

func (f DateFormat) separator() string {
	if f.Separator == "" {
		return " "
	}
	return f.Separator
}

// PadDate pads 0-9 to two digits. Other values, negatives included, are
// printed as is.
func PadDate(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// FormatDate renders t as "2021-07-15 15:30", optionally with seconds and
// the UTC offset in minutes ("2021-07-15 15:30:45+120").
func FormatDate(t time.Time, f DateFormat) string {
	var b strings.Builder
	b.WriteString(PadDate(t.Year()))
	b.WriteByte('-')
	b.WriteString(PadDate(int(t.Month())))
	b.WriteByte('-')
	b.WriteString(PadDate(t.Day()))
	if f.DateOnly {
		return b.String()
	}
	b.WriteString(f.separator())
	b.WriteString(FormatTime(t, f))
	return b.String()
}

// FormatDateCompact renders t as "15/7 15:30".
func FormatDateCompact(t time.Time, f DateFormat) string {
	date := fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
	if f.DateOnly {
		return date
	}
	return date + f.separator() + FormatTime(t, f)
}

// FormatTime renders the clock part of t as "15:30".
func FormatTime(t time.Time, f DateFormat) string {
	s := PadDate(t.Hour()) + ":" + PadDate(t.Minute())
	if f.ShowSeconds {
		s += ":" + PadDate(t.Second())
	}
	if f.ShowTimezone {
		_, offset := t.Zone()
		s += fmt.Sprintf("%+d", offset/60)
	}
	return s
}

// FormatISO8601 formats date to ISO 8601 format with timezone
// Example: 2025-01-15T10:00:00.000+0000
func FormatISO8601(date time.Time) string {
	return date.Format("2006-01-02T15:04:05.000-0700")
}
