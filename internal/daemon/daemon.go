package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/username/weekcal/pkg/dateutil"
	"github.com/username/weekcal/pkg/isoweek"
)

// WeekInfo describes the ISO week the daemon is currently in
type WeekInfo struct {
	Ref    isoweek.WeekRef
	Date   time.Time // civil date of the check
	Monday time.Time
	Sunday time.Time
}

// Title is the short tray label, e.g. "W42"
func (w WeekInfo) Title() string {
	return fmt.Sprintf("W%d", w.Ref.Week)
}

// Tooltip is the long tray label, e.g. "Week 42, 2021: 18 Oct - 24 Oct"
func (w WeekInfo) Tooltip() string {
	return fmt.Sprintf("Week %d, %d: %s - %s",
		w.Ref.Week, w.Ref.Year, w.Monday.Format("2 Jan"), w.Sunday.Format("2 Jan"))
}

// Status is a snapshot of the daemon state
type Status struct {
	Running       bool      `json:"running" yaml:"running"`
	Week          int       `json:"week" yaml:"week"`
	Year          int       `json:"year" yaml:"year"`
	Monday        string    `json:"monday" yaml:"monday"`
	Sunday        string    `json:"sunday" yaml:"sunday"`
	LastCheck     time.Time `json:"last_check" yaml:"last_check"`
	CheckInterval string    `json:"check_interval" yaml:"check_interval"`
}

// Daemon watches the clock and reports when the ISO week or day changes
type Daemon struct {
	checkInterval time.Duration
	systemTray    bool // Show system tray icon
	location      *time.Location
	logger        *zap.Logger
	now           func() time.Time
	ctx           context.Context
	cancel        context.CancelFunc
	trayApp       *TrayApp

	mu        sync.Mutex
	running   bool
	current   *WeekInfo
	lastCheck time.Time
	listeners []func(WeekInfo)
}

// NewDaemon creates a new daemon instance. Weeks are computed in loc
// (local time when nil).
func NewDaemon(checkInterval time.Duration, systemTray bool, loc *time.Location, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())
	if loc == nil {
		loc = time.Local
	}
	if checkInterval <= 0 {
		checkInterval = time.Minute
	}

	return &Daemon{
		checkInterval: checkInterval,
		systemTray:    systemTray,
		location:      loc,
		logger:        logger,
		now:           time.Now,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// OnChange registers fn to be called with the new week after every change
// of week or day, including the first check.
func (d *Daemon) OnChange(fn func(WeekInfo)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// Start starts the daemon, in the system tray when enabled and supported.
// It blocks until the daemon stops.
func (d *Daemon) Start() error {
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.Run(d.ctx)
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	return d.Run(d.ctx)
}

// Run checks the week immediately and then every check interval until ctx
// is done, Stop is called or SIGINT/SIGTERM arrives.
func (d *Daemon) Run(ctx context.Context) error {
	d.setRunning(true)
	defer d.setRunning(false)

	d.logger.Info("Week watcher started",
		zap.Duration("check_interval", d.checkInterval),
		zap.String("timezone", d.location.String()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	d.Check()

	ticker := time.NewTicker(d.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Daemon stopped")
			d.stopTray()
			return nil

		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			d.stopTray()
			return nil

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.stopTray()
			d.Stop()
			return nil

		case <-ticker.C:
			d.Check()
		}
	}
}

func (d *Daemon) stopTray() {
	if d.trayApp != nil {
		d.trayApp.Stop()
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

func (d *Daemon) setRunning(running bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = running
}

// Check reads the clock and notifies listeners when the week or the day
// changed since the previous check. It reports whether anything changed.
func (d *Daemon) Check() (WeekInfo, bool) {
	now := d.now().In(d.location)
	info := weekInfoAt(now)

	d.mu.Lock()
	d.lastCheck = now
	changed := d.current == nil || !dateutil.IsSameDay(d.current.Date, info.Date)
	weekChanged := d.current == nil || d.current.Ref != info.Ref
	if changed {
		d.current = &info
	}
	listeners := make([]func(WeekInfo), len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.Unlock()

	if !changed {
		d.logger.Debug("Week unchanged", zap.String("week", info.Ref.String()))
		return info, false
	}

	if weekChanged {
		d.logger.Info("New ISO week",
			zap.String("week", info.Ref.String()),
			zap.String("monday", info.Monday.Format("2006-01-02")),
			zap.String("sunday", info.Sunday.Format("2006-01-02")))
	} else {
		d.logger.Info("New day",
			zap.String("date", info.Date.Format("2006-01-02")),
			zap.String("week", info.Ref.String()))
	}

	for _, fn := range listeners {
		fn(info)
	}
	return info, true
}

func weekInfoAt(now time.Time) WeekInfo {
	ref := isoweek.Ref(now)
	// ref comes from a real date, so the week is valid
	days, _ := isoweek.DaysInWeek(ref.Week, ref.Year)
	return WeekInfo{
		Ref:    ref,
		Date:   dateutil.StartOfDay(now),
		Monday: days[0],
		Sunday: days[6],
	}
}

// Status returns daemon status
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	status := Status{
		Running:       d.running,
		LastCheck:     d.lastCheck,
		CheckInterval: d.checkInterval.String(),
	}
	if d.current != nil {
		status.Week = d.current.Ref.Week
		status.Year = d.current.Ref.Year
		status.Monday = d.current.Monday.Format("2006-01-02")
		status.Sunday = d.current.Sunday.Format("2006-01-02")
	}
	return status
}
