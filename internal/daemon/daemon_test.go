package daemon

import (
	"context"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newTestDaemon(t *testing.T, start time.Time) (*Daemon, *fakeClock) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	clock := &fakeClock{now: start}

	d := NewDaemon(10*time.Millisecond, false, time.UTC, logger)
	d.now = clock.Now
	return d, clock
}

func TestCheck_DetectsWeekAndDayChanges(t *testing.T) {
	d, clock := newTestDaemon(t, time.Date(2020, 12, 31, 23, 0, 0, 0, time.UTC))

	var seen []WeekInfo
	d.OnChange(func(info WeekInfo) { seen = append(seen, info) })

	info, changed := d.Check()
	require.True(t, changed)
	assert.Equal(t, 53, info.Ref.Week)
	assert.Equal(t, 2020, info.Ref.Year)

	clock.Set(time.Date(2020, 12, 31, 23, 30, 0, 0, time.UTC))
	_, changed = d.Check()
	assert.False(t, changed, "same day must not notify")

	clock.Set(time.Date(2021, 1, 1, 0, 5, 0, 0, time.UTC))
	info, changed = d.Check()
	assert.True(t, changed, "new day in the same week notifies")
	assert.Equal(t, 53, info.Ref.Week)

	clock.Set(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC))
	info, changed = d.Check()
	assert.True(t, changed)
	assert.Equal(t, 1, info.Ref.Week)
	assert.Equal(t, 2021, info.Ref.Year)

	require.Len(t, seen, 3)
	assert.Equal(t, "W53", seen[0].Title())
	assert.Equal(t, "W1", seen[2].Title())
}

func TestCheck_UsesConfiguredLocation(t *testing.T) {
	logger := zap.NewNop()
	tokyo := time.FixedZone("JST", 9*60*60)

	d := NewDaemon(time.Minute, false, tokyo, logger)
	// Sunday 20:00 UTC is already Monday in Tokyo
	d.now = func() time.Time { return time.Date(2021, 1, 3, 20, 0, 0, 0, time.UTC) }

	info, _ := d.Check()
	assert.Equal(t, 1, info.Ref.Week)
	assert.Equal(t, 2021, info.Ref.Year)
}

func TestWeekInfo_Labels(t *testing.T) {
	info := weekInfoAt(time.Date(2021, 10, 20, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, "W42", info.Title())
	assert.Equal(t, "Week 42, 2021: 18 Oct - 24 Oct", info.Tooltip())
	assert.Equal(t, time.Date(2021, 10, 20, 0, 0, 0, 0, time.UTC), info.Date)
}

func TestStatus(t *testing.T) {
	d, _ := newTestDaemon(t, time.Date(2021, 7, 15, 12, 0, 0, 0, time.UTC))

	status := d.Status()
	assert.False(t, status.Running)
	assert.Zero(t, status.Week)
	assert.Equal(t, "10ms", status.CheckInterval)

	d.Check()
	status = d.Status()
	assert.Equal(t, 28, status.Week)
	assert.Equal(t, 2021, status.Year)
	assert.Equal(t, "2021-07-12", status.Monday)
	assert.Equal(t, "2021-07-18", status.Sunday)
	assert.Equal(t, time.Date(2021, 7, 15, 12, 0, 0, 0, time.UTC), status.LastCheck)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	d, clock := newTestDaemon(t, time.Date(2021, 7, 18, 23, 59, 0, 0, time.UTC))

	changes := make(chan WeekInfo, 10)
	d.OnChange(func(info WeekInfo) { changes <- info })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	first := <-changes
	assert.Equal(t, 28, first.Ref.Week)

	clock.Set(time.Date(2021, 7, 19, 0, 1, 0, 0, time.UTC))
	select {
	case next := <-changes:
		assert.Equal(t, 29, next.Ref.Week)
	case <-time.After(2 * time.Second):
		t.Fatal("week change not detected")
	}

	assert.True(t, d.Status().Running)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, d.Status().Running)
}

func TestRun_StopsOnStop(t *testing.T) {
	d, _ := newTestDaemon(t, time.Date(2021, 7, 15, 12, 0, 0, 0, time.UTC))

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	time.Sleep(30 * time.Millisecond)
	d.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestNewDaemon_Defaults(t *testing.T) {
	d := NewDaemon(0, false, nil, zap.NewNop())
	assert.Equal(t, time.Minute, d.checkInterval)
	assert.Equal(t, time.Local, d.location)
}

func TestWeekIcon(t *testing.T) {
	icon := weekIcon()

	require.Len(t, icon, 6+16+40+16*16*4+16*4)
	le := binary.LittleEndian
	assert.Equal(t, uint16(1), le.Uint16(icon[2:]), "type")
	assert.Equal(t, uint16(1), le.Uint16(icon[4:]), "count")
	assert.Equal(t, byte(16), icon[6], "width")
	assert.Equal(t, uint32(len(icon)-22), le.Uint32(icon[14:]), "image size")
	assert.Equal(t, uint32(22), le.Uint32(icon[18:]), "image offset")
	assert.Equal(t, uint32(40), le.Uint32(icon[22:]), "bitmap header size")
}
