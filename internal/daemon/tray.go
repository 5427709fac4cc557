//go:build windows

package daemon

import (
	"fmt"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(weekIcon())
	systray.SetTitle("W")
	systray.SetTooltip("ISO week")

	mStatus := systray.AddMenuItem("Status", "Show the current week")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	t.daemon.OnChange(func(info WeekInfo) {
		systray.SetTitle(info.Title())
		systray.SetTooltip(info.Tooltip())
	})

	// Start daemon logic in background
	go func() {
		if err := t.daemon.Run(t.daemon.ctx); err != nil {
			t.logger.Error("Week watcher failed", zap.Error(err))
		}
	}()

	go func() {
		for {
			select {
			case <-mStatus.ClickedCh:
				t.logger.Info("Status clicked from tray")
				t.showStatus()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// showStatus shows the current week in a message box
func (t *TrayApp) showStatus() {
	status := t.daemon.Status()
	t.logger.Info("Current status", zap.Any("status", status))

	message := "No status available"
	if status.Week > 0 {
		message = fmt.Sprintf("Week %d, %d\nMonday: %s\nSunday: %s\nLast check: %s",
			status.Week, status.Year, status.Monday, status.Sunday,
			status.LastCheck.Format("15:04:05"))
	}

	showMessageBox("Week", message)
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}
