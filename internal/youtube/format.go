package youtube

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/watchdeck/watchdeck/internal/domain"
)

var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISO8601Duration converts the Data API's PT#H#M#S form to seconds.
// Malformed input yields 0.
func ParseISO8601Duration(s string) int {
	m := iso8601Duration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}

// FormatDuration renders seconds as M:SS, or H:MM:SS past an hour.
func FormatDuration(seconds int) string {
	return domain.FormatSeconds(float64(seconds))
}

// FormatViewCount renders a decimal count string as "1.2M views".
func FormatViewCount(count string) string {
	n, err := strconv.ParseInt(count, 10, 64)
	if err != nil {
		return ""
	}
	if n == 1 {
		return "1 view"
	}
	return abbreviateCount(n) + " views"
}

// FormatSubscriberCount renders a decimal count string as "1.2M subscribers".
func FormatSubscriberCount(count string) string {
	n, err := strconv.ParseInt(count, 10, 64)
	if err != nil {
		return ""
	}
	if n == 1 {
		return "1 subscriber"
	}
	return abbreviateCount(n) + " subscribers"
}

func abbreviateCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimTrailingZero(float64(n) / 1_000_000) + "M"
	case n >= 1_000:
		return trimTrailingZero(float64(n) / 1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// trimTrailingZero renders one decimal place, dropping ".0".
func trimTrailingZero(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
