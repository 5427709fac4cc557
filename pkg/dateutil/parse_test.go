package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

func testParser() Parser {
	return Parser{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}
}

func TestParser_Parse(t *testing.T) {
	july15 := time.Date(2021, 7, 15, 0, 0, 0, 0, time.UTC)
	plus2 := time.FixedZone("", 2*60*60)

	tests := []struct {
		name  string
		input any
		want  time.Time
	}{
		{"time.Time is returned as is", july15, july15},
		{"Pointer to time.Time", &july15, july15},
		{"Unix seconds", 1626307200, july15},
		{"Unix seconds as int64", int64(1626307200), july15},
		{"Unix seconds as float", 1626307200.0, july15},
		{"Unix milliseconds", int64(1626307200000), july15},
		{"Unix milliseconds are truncated", int64(1626307200999), july15},
		{"Unix seconds as string", "1626307200", july15},
		{"Unix milliseconds as string", "1626307200000", july15},
		{"ISO date", "2021-07-15", july15},
		{"ISO date and time", "2021-07-15T15:30:45", time.Date(2021, 7, 15, 15, 30, 45, 0, time.UTC)},
		{"ISO date and time with space", "2021-07-15 15:30:45", time.Date(2021, 7, 15, 15, 30, 45, 0, time.UTC)},
		{"ISO date and time without seconds", "2021-07-15T15:30", time.Date(2021, 7, 15, 15, 30, 0, 0, time.UTC)},
		{"RFC 3339 UTC", "2021-07-15T15:30:45Z", time.Date(2021, 7, 15, 15, 30, 45, 0, time.UTC)},
		{"RFC 3339 with offset", "2021-07-15T15:30:45+02:00", time.Date(2021, 7, 15, 15, 30, 45, 0, plus2)},
		{"Tracker style offset", "2021-07-15T15:30:45.000+0200", time.Date(2021, 7, 15, 15, 30, 45, 0, plus2)},
		{"Dotted date", "15.07.2021", july15},
		{"Surrounding spaces", "  2021-07-15  ", july15},
	}

	p := testParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseStrict(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "ParseStrict(%v) = %v, want %v", tt.input, got, tt.want)
			assert.True(t, p.Parse(tt.input).Equal(tt.want))
		})
	}
}

func TestParser_FallsBackToNow(t *testing.T) {
	var nilTime *time.Time

	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"nil pointer", nilTime},
		{"garbage string", "not a date"},
		{"empty string", ""},
		{"number below epoch range", 12345},
		{"number between ranges", int64(99999999999)},
		{"number above range", int64(99999999999999)},
		{"numeric string below range", "42"},
		{"unsupported type", []int{2021, 7, 15}},
		{"broken ISO date", "2021-13-45"},
	}

	p := testParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseStrict(tt.input)
			assert.ErrorIs(t, err, ErrUnparseable)
			assert.Equal(t, fixedNow, p.Parse(tt.input))
		})
	}
}

func TestParser_UsesLocation(t *testing.T) {
	oslo := time.FixedZone("CET", 60*60)
	p := Parser{Location: oslo}

	got, err := p.ParseStrict("2021-07-15 10:00:00")
	require.NoError(t, err)
	assert.Equal(t, oslo, got.Location())
	assert.Equal(t, 9, got.UTC().Hour())

	got, err = p.ParseStrict(1626307200)
	require.NoError(t, err)
	assert.Equal(t, oslo, got.Location())
	assert.Equal(t, 1, got.Hour())
}

func TestParseInput_DefaultParser(t *testing.T) {
	got, err := ParseInputStrict("2021-07-15T15:30:45Z")
	require.NoError(t, err)
	assert.Equal(t, 2021, got.Year())

	before := time.Now()
	fallback := ParseInput("nope")
	assert.False(t, fallback.Before(before))
}
