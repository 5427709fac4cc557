package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/username/weekcal/pkg/dateutil"
	"github.com/username/weekcal/pkg/numfmt"
	"github.com/username/weekcal/pkg/random"
	"github.com/username/weekcal/pkg/textutil"
)

func utilCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "util",
		Short: "Number, text and id helpers",
	}

	cmd.AddCommand(
		utilBytesCmd(),
		utilNumberCmd(),
		utilPercentCmd(),
		utilPasswordCmd(),
		utilIDCmd(),
		utilTextCmd(),
		utilAgeCmd(),
	)

	return cmd
}

func parseFloatArg(name, arg string) (float64, error) {
	n, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got '%s'", name, arg)
	}
	return n, nil
}

func printLine(value string) error {
	return render(value, func(w io.Writer) {
		fmt.Fprintln(w, value)
	})
}

func utilBytesCmd() *cobra.Command {
	var decimals int

	cmd := &cobra.Command{
		Use:   "bytes <count>",
		Short: "Format a byte count, e.g. 1536 is 1.5 KB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("count must be an integer, got '%s'", args[0])
			}
			return printLine(numfmt.FormatBytes(n, decimals))
		},
	}

	cmd.Flags().IntVar(&decimals, "decimals", 2, "Decimal places")

	return cmd
}

func utilNumberCmd() *cobra.Command {
	var decimals int
	var compact bool
	var decPoint, thousandsSep string

	cmd := &cobra.Command{
		Use:   "number <value>",
		Short: "Format a number with a thousands separator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseFloatArg("value", args[0])
			if err != nil {
				return err
			}
			if compact {
				return printLine(numfmt.FormatCompact(n))
			}
			return printLine(numfmt.Format(n, decimals, decPoint, thousandsSep))
		},
	}

	cmd.Flags().IntVar(&decimals, "decimals", 0, "Decimal places")
	cmd.Flags().BoolVar(&compact, "compact", false, "Shorten thousands and millions (1,5K)")
	cmd.Flags().StringVar(&decPoint, "dec-point", ",", "Decimal point")
	cmd.Flags().StringVar(&thousandsSep, "thousands-sep", " ", "Thousands separator")

	return cmd
}

func utilPercentCmd() *cobra.Command {
	var decimals int

	cmd := &cobra.Command{
		Use:   "percent <part> <total>",
		Short: "Show part as a percentage of total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			part, err := parseFloatArg("part", args[0])
			if err != nil {
				return err
			}
			total, err := parseFloatArg("total", args[1])
			if err != nil {
				return err
			}
			pct := numfmt.Round(numfmt.PercentOfTotal(total, part), decimals)
			return printLine(numfmt.DefaultFormat(pct, decimals) + "%")
		},
	}

	cmd.Flags().IntVar(&decimals, "decimals", 1, "Decimal places")

	return cmd
}

func utilPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password [password]",
		Short: "Generate a password, or score the given one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printLine(random.Password())
			}

			out := map[string]any{
				"score":    textutil.ScorePassword(args[0]),
				"strength": textutil.PasswordStrength(args[0]),
			}
			return render(out, func(w io.Writer) {
				fmt.Fprintf(w, "score %d, %s\n", out["score"], out["strength"])
			})
		},
	}
}

func utilIDCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "id",
		Short: "Generate a random alphanumeric id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if length <= 0 {
				return fmt.Errorf("length must be positive, got %d", length)
			}
			return printLine(random.MakeID(length))
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 16, "Id length")

	return cmd
}

func utilTextCmd() *cobra.Command {
	transforms := map[string]func(string) string{
		"camelize":     textutil.Camelize,
		"ucfirst":      textutil.UcFirst,
		"encode-uri":   textutil.EncodeURI,
		"escape-email": textutil.EscapeEmail,
	}

	return &cobra.Command{
		Use:       "text camelize|ucfirst|encode-uri|escape-email <text>",
		Short:     "Transform a string",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"camelize", "ucfirst", "encode-uri", "escape-email"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := transforms[args[0]]
			if !ok {
				return fmt.Errorf("unknown transform '%s'", args[0])
			}
			return printLine(fn(args[1]))
		},
	}
}

func utilAgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "age <birth date> [at]",
		Short: "Whole years between two dates (today by default)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			at := dateutil.Today()
			if len(args) == 2 {
				if at, err = parseDateArg(args[1]); err != nil {
					return err
				}
			}
			return printLine(strconv.Itoa(dateutil.Age(birth, at)))
		},
	}
}
