package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/weekcal/internal/ics"
	"github.com/username/weekcal/pkg/isoweek"
)

func icsCmd() *cobra.Command {
	var year, month int
	var file, weekStart string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export ISO weeks as an iCalendar file",
		Long:  "Export one all-day event per ISO week of a year, or of the weeks overlapping one month.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().In(cfg.Calendar.GetLocation()).Year()
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}

			exporter := ics.NewExporter(logger)

			var cal *ical.Calendar
			if month == 0 {
				cal = exporter.WeeksCalendar(year)
			} else {
				start := cfg.Calendar.GetWeekStart()
				if cmd.Flags().Changed("week-start") {
					var err error
					if start, err = isoweek.ParseWeekStart(weekStart); err != nil {
						return err
					}
				}
				cal = exporter.MonthCalendar(month, year, start)
			}

			if file == "" || file == "-" {
				return ics.Write(stdout, cal)
			}

			if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open output file: %w", err)
			}
			defer f.Close()

			if err := ics.Write(f, cal); err != nil {
				return err
			}

			logger.Info("Calendar exported",
				zap.String("file", file),
				zap.Int("year", year),
				zap.Int("month", month),
				zap.Int("events", len(cal.Events())))
			fmt.Fprintf(stdout, "✅ Wrote %d week(s) to %s\n", len(cal.Events()), file)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to export (current year by default)")
	cmd.Flags().IntVar(&month, "month", 0, "Export only the weeks overlapping this month (1-12)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Output file (stdout when empty)")
	cmd.Flags().StringVar(&weekStart, "week-start", "monday", "Weekday that opens a month span: monday or sunday")

	return cmd
}
