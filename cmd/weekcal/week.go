package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/weekcal/pkg/dateutil"
	"github.com/username/weekcal/pkg/isoweek"
)

const dayLayout = "2006-01-02"

type weekOutput struct {
	Date        string `json:"date" yaml:"date"`
	Week        int    `json:"week" yaml:"week"`
	Year        int    `json:"year" yaml:"year"`
	Monday      string `json:"monday" yaml:"monday"`
	Sunday      string `json:"sunday" yaml:"sunday"`
	WeeksInYear int    `json:"weeks_in_year" yaml:"weeks_in_year"`
}

type dayOutput struct {
	Date    string `json:"date" yaml:"date"`
	Weekday string `json:"weekday" yaml:"weekday"`
	Weekend bool   `json:"weekend" yaml:"weekend"`
}

func dateParser() dateutil.Parser {
	return dateutil.Parser{Location: cfg.Calendar.GetLocation()}
}

func parseDateArg(arg string) (time.Time, error) {
	t, err := dateParser().ParseStrict(arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date '%s': %w", arg, err)
	}
	return t, nil
}

func parseIntArg(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got '%s'", name, arg)
	}
	return n, nil
}

func parseWeekYearArgs(args []string) (week, year int, err error) {
	if week, err = parseIntArg("week", args[0]); err != nil {
		return 0, 0, err
	}
	if year, err = parseIntArg("year", args[1]); err != nil {
		return 0, 0, err
	}
	return week, year, nil
}

func weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week [date]",
		Short: "Show the ISO week of a date (today by default)",
		Long: "Show the ISO week of a date. The date may be YYYY-MM-DD with an optional time, " +
			"DD.MM.YYYY or a Unix timestamp in seconds or milliseconds.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().In(cfg.Calendar.GetLocation())
			if len(args) == 1 {
				var err error
				if date, err = parseDateArg(args[0]); err != nil {
					return err
				}
			}

			ref := isoweek.Ref(date)
			days, err := isoweek.DaysInWeek(ref.Week, ref.Year)
			if err != nil {
				return fmt.Errorf("failed to get days of week: %w", err)
			}

			logger.Debug("Computed week",
				zap.Time("date", date),
				zap.String("week", ref.String()))

			out := weekOutput{
				Date:        dateutil.FormatDate(date, dateutil.DateFormat{DateOnly: true}),
				Week:        ref.Week,
				Year:        ref.Year,
				Monday:      days[0].Format(dayLayout),
				Sunday:      days[6].Format(dayLayout),
				WeeksInYear: isoweek.WeeksInYear(ref.Year),
			}
			return render(out, func(w io.Writer) {
				fmt.Fprintf(w, "%s is in week %d of %d (%s .. %s, %d weeks in %d)\n",
					out.Date, out.Week, out.Year, out.Monday, out.Sunday, out.WeeksInYear, out.Year)
			})
		},
	}
}

func weeksInYearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weeks-in-year <year>",
		Short: "Show the number of ISO weeks (52 or 53) in a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseIntArg("year", args[0])
			if err != nil {
				return err
			}

			out := map[string]int{"year": year, "weeks": isoweek.WeeksInYear(year)}
			return render(out, func(w io.Writer) {
				fmt.Fprintf(w, "%d has %d ISO weeks\n", year, out["weeks"])
			})
		},
	}
}

func weekDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week-date <week> <year>",
		Short: "Show the Monday of an ISO week",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, year, err := parseWeekYearArgs(args)
			if err != nil {
				return err
			}

			monday, err := isoweek.DateOfISOWeek(week, year)
			if err != nil {
				return err
			}

			out := map[string]any{"week": week, "year": year, "monday": monday.Format(dayLayout)}
			return render(out, func(w io.Writer) {
				fmt.Fprintf(w, "Week %d of %d starts on %s\n", week, year, monday.Format("Monday, 2 January 2006"))
			})
		},
	}
}

func daysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days <week> <year>",
		Short: "List the seven days of an ISO week",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, year, err := parseWeekYearArgs(args)
			if err != nil {
				return err
			}

			days, err := isoweek.DaysInWeek(week, year)
			if err != nil {
				return err
			}

			out := make([]dayOutput, 0, len(days))
			for _, d := range days {
				out = append(out, dayOutput{
					Date:    d.Format(dayLayout),
					Weekday: d.Weekday().String(),
					Weekend: dateutil.IsWeekend(d),
				})
			}

			return render(out, func(w io.Writer) {
				fmt.Fprintf(w, "Week %d of %d\n", week, year)
				for _, d := range out {
					marker := ""
					if d.Weekend {
						marker = " *"
					}
					fmt.Fprintf(w, "  %-9s %s%s\n", d.Weekday, d.Date, marker)
				}
			})
		},
	}
}

func monthCmd() *cobra.Command {
	var weekStart string

	cmd := &cobra.Command{
		Use:   "month <month> <year>",
		Short: "Split a month into ISO week spans",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseIntArg("month", args[0])
			if err != nil {
				return err
			}
			year, err := parseIntArg("year", args[1])
			if err != nil {
				return err
			}

			start := cfg.Calendar.GetWeekStart()
			if cmd.Flags().Changed("week-start") {
				if start, err = isoweek.ParseWeekStart(weekStart); err != nil {
					return err
				}
			}

			spans := isoweek.WeeksInMonth(month, year, start)
			title := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")

			return render(spans, func(w io.Writer) {
				fmt.Fprintf(w, "%s (spans start on %s)\n", title, start)
				fmt.Fprintln(w, "  Days   | Week     | ISO week")
				fmt.Fprintln(w, "---------+----------+-------------------------")
				for _, s := range spans {
					fmt.Fprintf(w, "  %2d-%-2d  | %-8s | %s .. %s\n",
						s.Start, s.End, s.Ref(),
						s.DaysInWeek[0].Format(dayLayout),
						s.DaysInWeek[6].Format(dayLayout))
				}
			})
		},
	}

	cmd.Flags().StringVar(&weekStart, "week-start", "monday", "Weekday that opens a span: monday or sunday")

	return cmd
}
