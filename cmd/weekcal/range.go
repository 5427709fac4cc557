package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/weekcal/pkg/isoweek"
)

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func rangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Enumerate the months, weeks, days or hours between two dates",
	}

	cmd.AddCommand(
		rangeSubCmd("month", "List every month touched by the range", func(start, end string) (any, func(io.Writer), error) {
			s, e, err := parseRangeArgs(start, end)
			if err != nil {
				return nil, nil, err
			}
			months := isoweek.MonthRange(s, e)
			return months, func(w io.Writer) {
				for _, m := range months {
					fmt.Fprintf(w, "%d-%02d\n", m.Year, m.Month)
				}
			}, nil
		}),
		rangeSubCmd("week", "List every (ISO week, year) pair touched by the range", func(start, end string) (any, func(io.Writer), error) {
			s, e, err := parseRangeArgs(start, end)
			if err != nil {
				return nil, nil, err
			}
			weeks, err := isoweek.WeekRange(s, e)
			if err != nil {
				return nil, nil, err
			}
			return weeks, func(w io.Writer) {
				for _, wk := range weeks {
					fmt.Fprintf(w, "week %2d  %d\n", wk.Week, wk.Year)
				}
			}, nil
		}),
		rangeSubCmd("day", "List every day of the range", func(start, end string) (any, func(io.Writer), error) {
			s, e, err := parseRangeArgs(start, end)
			if err != nil {
				return nil, nil, err
			}
			days := isoweek.DayRange(s, e)
			return days, func(w io.Writer) {
				for _, d := range days {
					fmt.Fprintf(w, "%d-%02d-%02d %s  week %d\n", d.Year, d.Month, d.Day, weekdayNames[d.Dow], d.Week)
				}
			}, nil
		}),
		rangeSubCmd("hour", "List every hour of the range", func(start, end string) (any, func(io.Writer), error) {
			s, e, err := parseRangeArgs(start, end)
			if err != nil {
				return nil, nil, err
			}
			hours := isoweek.HourRange(s, e)
			return hours, func(w io.Writer) {
				for _, h := range hours {
					fmt.Fprintf(w, "%d-%02d-%02d %02d:00 %s  week %d\n", h.Year, h.Month, h.Day, h.Hour, weekdayNames[h.Dow], h.Week)
				}
			}, nil
		}),
	)

	return cmd
}

type rangeFunc func(start, end string) (any, func(io.Writer), error)

func rangeSubCmd(use, short string, fn rangeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <start> <end>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, text, err := fn(args[0], args[1])
			if err != nil {
				return err
			}
			logger.Debug("Enumerated range",
				zap.String("kind", use),
				zap.String("start", args[0]),
				zap.String("end", args[1]))
			return render(result, text)
		},
	}
}

func parseRangeArgs(start, end string) (s, e time.Time, err error) {
	if s, err = parseDateArg(start); err != nil {
		return
	}
	e, err = parseDateArg(end)
	return
}
