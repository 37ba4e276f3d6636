package jekyll

import (
	"regexp"
	"strconv"
	"time"
)

// Format: YYYY-MM-DD[ HH[:MM[:SS]][ +/-TTTT]], matched from the start of the text only.
var dateTimePattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})(?:\s+(\d{2})(?::(\d{2})(?::(\d{2}))?)?(?:\s*([+-]\d{4}))?)?`,
)

// ParseDateTime parses a Jekyll-formatted datetime using the process's local
// offset when the text carries none. Trailing text after the datetime is ignored,
// so a post slug such as "2023-01-02-my-post" yields 2023-01-02 00:00.
// The second return value is false when the text isn't a datetime.
func ParseDateTime(text string) (time.Time, bool) {
	return ParseDateTimeIn(text, time.Local)
}

// ParseDateTimeIn is ParseDateTime with an explicit default location.
func ParseDateTimeIn(text string, loc *time.Location) (time.Time, bool) {
	m := dateTimePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	var hour, minute, second int
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		// minutes default to 00 when only the hour is given
		if m[5] != "" {
			minute, _ = strconv.Atoi(m[5])
		}
		if m[6] != "" {
			second, _ = strconv.Atoi(m[6])
		}
		if m[7] != "" {
			loc = parseOffset(m[7])
		}
	}

	if !validClock(year, month, day, hour, minute, second) {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), true
}

// parseOffset turns "+hhmm" or "-hhmm" into a fixed zone.
func parseOffset(s string) *time.Location {
	hh, _ := strconv.Atoi(s[1:3])
	mm, _ := strconv.Atoi(s[3:5])
	secs := hh*3600 + mm*60
	if s[0] == '-' {
		secs = -secs
	}
	return time.FixedZone(s, secs)
}

// validClock rejects calendar values time.Date would silently roll over,
// e.g. month 13 or February 30.
func validClock(year, month, day, hour, minute, second int) bool {
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || second > 59 {
		return false
	}
	// day 0 of the next month is the last day of this one
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}
