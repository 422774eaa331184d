// Package timeutil converts human-entered times of day to second counts and back.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SecondsPerDay is the number of seconds in a day; a time of day is in [0, SecondsPerDay).
const SecondsPerDay = 86400

var strictPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)

// Format renders seconds as zero-padded HH:MM:SS.
// Values of a day or more keep counting hours (25:00:00) so durations format too.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}

// FormatDuration floors a real number of seconds and renders it with Format.
func FormatDuration(seconds float64) string {
	return Format(int(math.Floor(seconds)))
}

// ParseStrict parses the canonical HH:MM:SS form into seconds since midnight.
// Hours may have one or two digits; minutes and seconds must have two.
func ParseStrict(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	m := strictPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, &FormatError{Input: text, err: ErrInvalidFormat}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second, _ := strconv.Atoi(m[3])
	if err := checkRange(text, hour, minute, second, true); err != nil {
		return 0, err
	}

	return hour*3600 + minute*60 + second, nil
}
