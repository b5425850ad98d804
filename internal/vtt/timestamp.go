package vtt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTimestamp converts a subtitle timestamp into seconds. It accepts the
// full "HH:MM:SS.mmm" form, the short "MM:SS.mmm" form, and bare seconds.
// Fields are folded left to right at base 60, may be fractional, and are not
// range-checked, so "00:90.5" simply means ninety and a half seconds.
func ParseTimestamp(raw string) (float64, error) {
	var total float64
	for _, field := range strings.Split(strings.TrimSpace(raw), ":") {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, err
		}
		total = total*60 + value
	}
	return total, nil
}

// FormatTimestamp renders seconds as "HH:MM:SS.mmm". The value is rounded to
// whole milliseconds before decomposition, so a fraction that rounds up to a
// full second carries into the seconds field instead of printing a four-digit
// millisecond part. Negative values are not representable and clamp to zero.
func FormatTimestamp(seconds float64) string {
	ms := int64(math.Round(seconds * 1000))
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
