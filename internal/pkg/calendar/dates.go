package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var ErrMalformedDate = errors.New("malformed date")

// DateOf keeps the wall-clock year, month and day of t and drops the clock and zone.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" string into a naive date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMalformedDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date as seen from loc. A nil loc means time.Local.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

// Overlaps reports whether the closed ranges [aStart, aEnd] and [bStart, bEnd]
// share at least one day. Touching boundaries overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !DateOf(aStart).After(DateOf(bEnd)) && !DateOf(bStart).After(DateOf(aEnd))
}

// Within reports whether d falls in the closed range [start, end].
func Within(d, start, end time.Time) bool {
	d = DateOf(d)
	return !d.Before(DateOf(start)) && !d.After(DateOf(end))
}

// DaysInclusive counts calendar days in [start, end].
func DaysInclusive(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours()/24) + 1
}

// AddDays moves d by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return DateOf(d).AddDate(0, 0, n)
}
