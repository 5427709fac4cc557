// Package numfmt formats and scales numbers for display.
package numfmt

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrEqualBounds is returned by NormalizeBetween when the source range is empty.
var ErrEqualBounds = errors.New("minVal and maxVal cannot be equal")

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// Format renders n with the given number of decimals, decimal point and
// thousands separator, e.g. Format(1234567.891, 2, ",", " ") = "1 234 567,89".
// A negative decimals count is treated as positive.
func Format(n float64, decimals int, decPoint, thousandsSep string) string {
	if decimals < 0 {
		decimals = -decimals
	}

	sign := ""
	if n < 0 {
		sign = "-"
	}

	fixed := strconv.FormatFloat(math.Abs(n), 'f', decimals, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	if sign != "" && strings.Trim(fixed, "0.") == "" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteRune(r)
	}
	if decimals > 0 {
		b.WriteString(decPoint)
		b.WriteString(fracPart)
	}
	return b.String()
}

// DefaultFormat is Format with a comma decimal point and a space as thousands separator.
func DefaultFormat(n float64, decimals int) string {
	return Format(n, decimals, ",", " ")
}

// FormatCompact shortens thousands and millions: 1500 is "1,5K", 2300000 is "2,3M".
func FormatCompact(n float64) string {
	abs := math.Abs(n)
	sign := ""
	if n < 0 {
		sign = "-"
	}

	switch {
	case abs > 999999:
		return sign + DefaultFormat(abs/1e6, 1) + "M"
	case abs > 999:
		return sign + DefaultFormat(abs/1e3, 1) + "K"
	}
	return DefaultFormat(n, 0)
}

// FormatBytes renders a byte count with binary units, e.g. "1.5 KB".
// decimals defaults to 2 and trailing zeros are dropped. Negative counts
// give an empty string.
func FormatBytes(bytes int64, decimals int) string {
	if bytes < 0 {
		return ""
	}
	if bytes == 0 {
		return "0 Bytes"
	}
	if decimals <= 0 {
		decimals = 2
	}

	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(byteUnits)-1 {
		value /= 1024
		i++
	}
	return strconv.FormatFloat(Round(value, decimals), 'f', -1, 64) + " " + byteUnits[i]
}

// Round rounds n half away from zero to scale decimals.
func Round(n float64, scale int) float64 {
	p := math.Pow(10, float64(scale))
	return math.Round(n*p) / p
}

// PercentOfTotal returns part as a percentage of total, or 0 when total is 0.
func PercentOfTotal(total, part float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// ValidRange clamps v into [min, max]. When min > max the result is max.
func ValidRange(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}

// Range returns start, start+step, ... up to and including end.
func Range(start, end, step int) []int {
	values := []int{}
	if step <= 0 {
		return values
	}
	for v := start; v <= end; v += step {
		values = append(values, v)
	}
	return values
}

// NormalizeBetween maps val linearly from [minVal, maxVal] onto [newMin, newMax].
// Values outside the source range are extrapolated.
func NormalizeBetween(val, minVal, maxVal, newMin, newMax float64) (float64, error) {
	if minVal == maxVal {
		return 0, ErrEqualBounds
	}
	return newMin + (val-minVal)*(newMax-newMin)/(maxVal-minVal), nil
}

// NormalizeBetweenCapped is NormalizeBetween with the result capped at
// absMax. A zero or negative absMax disables the cap.
func NormalizeBetweenCapped(val, minVal, maxVal, newMin, newMax, absMax float64) (float64, error) {
	v, err := NormalizeBetween(val, minVal, maxVal, newMin, newMax)
	if err != nil {
		return 0, err
	}
	if absMax > 0 && v > absMax {
		return absMax, nil
	}
	return v, nil
}
