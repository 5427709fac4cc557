package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/weekcal/internal/daemon"
	"github.com/username/weekcal/pkg/dateutil"
)

func watchCmd() *cobra.Command {
	var interval time.Duration
	var noTray, once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the clock and report every new ISO week",
		Long: "Run the week watcher. It prints the current ISO week, then a line for every new day or week, " +
			"and shows the week number in the system tray on Windows.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checkInterval := cfg.Daemon.GetCheckInterval()
			if cmd.Flags().Changed("interval") {
				checkInterval = interval
			}

			d := daemon.NewDaemon(checkInterval, cfg.Daemon.SystemTray && !noTray && !once,
				cfg.Calendar.GetLocation(), logger)

			if once {
				d.Check()
				status := d.Status()
				return render(status, func(w io.Writer) {
					fmt.Fprintf(w, "Week %d of %d (%s .. %s), checked %s\n",
						status.Week, status.Year, status.Monday, status.Sunday,
						dateutil.FormatDate(status.LastCheck, dateutil.DateFormat{ShowSeconds: true}))
				})
			}

			d.OnChange(func(info daemon.WeekInfo) {
				fmt.Fprintf(stdout, "📅 %s  %s\n", info.Title(), info.Tooltip())
			})

			logger.Info("Starting week watcher",
				zap.Duration("check_interval", checkInterval),
				zap.Bool("system_tray", cfg.Daemon.SystemTray && !noTray))

			return d.Start()
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Clock check interval")
	cmd.Flags().BoolVar(&noTray, "no-tray", false, "Do not show the system tray icon")
	cmd.Flags().BoolVar(&once, "once", false, "Print the current week status and exit")

	return cmd
}
