package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable is returned by ParseInputStrict for input it cannot read as a date.
var ErrUnparseable = errors.New("unparseable date")

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Layouts tried for strings containing a YYYY-MM-DD date. Layouts without an
// offset are read in the parser's location.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

const dottedLayout = "02.01.2006"

// Parser turns loosely typed input into a time.Time.
//
// Numbers (or numeric strings) between 1e9 and 9999999999 are Unix seconds,
// between 1e12 and 9999999999999 Unix milliseconds truncated to the second.
// Strings holding an ISO date and "DD.MM.YYYY" strings are parsed in Location.
type Parser struct {
	// Location for layouts without an offset and for epoch results. Local when nil.
	Location *time.Location
	// Now supplies the fallback of Parse. time.Now when nil.
	Now func() time.Time
}

func (p Parser) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

func (p Parser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Parse reads v and falls back to the current time when v is not a date.
func (p Parser) Parse(v any) time.Time {
	t, err := p.ParseStrict(v)
	if err != nil {
		return p.now()
	}
	return t
}

// ParseStrict reads v and reports ErrUnparseable when v is not a date.
func (p Parser) ParseStrict(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		if x != nil {
			return *x, nil
		}
	case int:
		return p.fromEpoch(float64(x), v)
	case int32:
		return p.fromEpoch(float64(x), v)
	case int64:
		return p.fromEpoch(float64(x), v)
	case uint:
		return p.fromEpoch(float64(x), v)
	case uint32:
		return p.fromEpoch(float64(x), v)
	case uint64:
		return p.fromEpoch(float64(x), v)
	case float32:
		return p.fromEpoch(float64(x), v)
	case float64:
		return p.fromEpoch(x, v)
	case string:
		return p.fromString(x)
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrUnparseable, v)
}

func (p Parser) fromEpoch(n float64, v any) (time.Time, error) {
	switch {
	case n > 1e9 && n < 9999999999:
		return time.Unix(int64(n), 0).In(p.location()), nil
	case n > 1e12 && n < 9999999999999:
		return time.Unix(int64(n/1000), 0).In(p.location()), nil
	}
	return time.Time{}, fmt.Errorf("%w: %v is outside the epoch ranges", ErrUnparseable, v)
}

func (p Parser) fromString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return p.fromEpoch(n, s)
	}

	if isoDatePattern.MatchString(s) {
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, s, p.location()); err == nil {
				return t, nil
			}
		}
	}

	if t, err := time.ParseInLocation(dottedLayout, s, p.location()); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
}

var defaultParser Parser

// ParseInput reads v with the default parser (local time, real clock) and
// returns the current time when v is not a date.
func ParseInput(v any) time.Time {
	return defaultParser.Parse(v)
}

// ParseInputStrict is ParseInput without the fallback.
func ParseInputStrict(v any) (time.Time, error) {
	return defaultParser.ParseStrict(v)
}
