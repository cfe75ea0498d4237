// Package format renders upstream values for display. Formatted output
// is presentation-only; sorting always uses the raw values.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Duration holds both representations of a decoded video duration.
type Duration struct {
	TotalSeconds int
	Display      string
}

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// DecodeDuration converts the upstream encoding ("PT1H2M3S") into total
// seconds and a clock display. Anything that does not match decodes to
// zero; absent data is a valid zero-length duration, never an error.
func DecodeDuration(raw string) Duration {
	m := durationPattern.FindStringSubmatch(raw)
	if m == nil {
		return Duration{TotalSeconds: 0, Display: "0:00"}
	}
	hours := atoi(m[1])
	minutes := atoi(m[2])
	seconds := atoi(m[3])

	return Duration{
		TotalSeconds: hours*3600 + minutes*60 + seconds,
		Display:      Clock(hours, minutes, seconds),
	}
}

// Clock renders H:MM:SS, dropping the hour segment when it is zero.
func Clock(hours, minutes, seconds int) string {
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// CompactNumber abbreviates a count with K/M/B suffixes, one decimal,
// rounded half up. Values under a thousand pass through verbatim.
func CompactNumber(n int64) string {
	switch {
	case n < 1_000:
		return strconv.FormatInt(n, 10)
	case n < 1_000_000:
		return scaled(n, 1_000) + "K"
	case n < 1_000_000_000:
		return scaled(n, 1_000_000) + "M"
	default:
		return scaled(n, 1_000_000_000) + "B"
	}
}

func scaled(n, unit int64) string {
	v := math.Floor(float64(n)/float64(unit)*10+0.5) / 10
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// RelativeTime buckets the elapsed time since t into the largest
// applicable unit. Months are approximated as 30 days and years as 365;
// callers needing calendar accuracy should not use this.
func RelativeTime(t, now time.Time) string {
	secs := int64(now.Sub(t).Seconds())
	if secs < 60 {
		return "Just now"
	}

	const (
		minute = 60
		hour   = 60 * minute
		day    = 24 * hour
		month  = 30 * day
		year   = 365 * day
	)
	switch {
	case secs >= year:
		return ago(secs/year, "year")
	case secs >= month:
		return ago(secs/month, "month")
	case secs >= day:
		return ago(secs/day, "day")
	case secs >= hour:
		return ago(secs/hour, "hour")
	default:
		return ago(secs/minute, "minute")
	}
}

func ago(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
