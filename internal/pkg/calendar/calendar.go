package calendar

import (
	"time"
)

// Calendar answers business-day questions against an injected holiday table.
// It is read-only after New and safe for concurrent use.
type Calendar struct {
	table    HolidayTable
	holidays map[string]struct{}
}

func New(table HolidayTable) *Calendar {
	holidays := make(map[string]struct{}, len(table.Fixed)+len(table.ApproximateMovable))
	for _, md := range table.All() {
		holidays[md] = struct{}{}
	}
	return &Calendar{table: table, holidays: holidays}
}

// Table returns the holiday table the calendar was built with.
func (c *Calendar) Table() HolidayTable {
	return c.table
}

// IsBusinessDay reports whether date is Monday to Friday and not a listed
// holiday. Only the wall-clock date is considered. The zero time is not a
// business day; use CheckBusinessDay to tell malformed input apart.
func (c *Calendar) IsBusinessDay(date time.Time) bool {
	if date.IsZero() {
		return false
	}
	date = DateOf(date)

	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	_, holiday := c.holidays[date.Format("01-02")]
	return !holiday
}

// CheckBusinessDay parses s and reports whether it is a business day.
// Empty or unparseable input returns ErrMalformedDate.
func (c *Calendar) CheckBusinessDay(s string) (bool, error) {
	date, err := ParseDate(s)
	if err != nil {
		return false, err
	}
	return c.IsBusinessDay(date), nil
}

// IsHoliday reports whether date is a listed holiday and returns its description.
func (c *Calendar) IsHoliday(date time.Time) (string, bool) {
	md := DateOf(date).Format("01-02")
	if _, ok := c.holidays[md]; !ok {
		return "", false
	}
	if desc, ok := c.table.Descriptions[md]; ok {
		return desc, true
	}
	return "holiday", true
}

// NonBusinessReason explains why date is not a business day, or returns ""
// when it is one.
func (c *Calendar) NonBusinessReason(date time.Time) string {
	date = DateOf(date)
	switch date.Weekday() {
	case time.Saturday:
		return "saturday"
	case time.Sunday:
		return "sunday"
	}
	if desc, ok := c.IsHoliday(date); ok {
		return "holiday (" + desc + ")"
	}
	return ""
}

// BusinessDaysBetween counts business days in the closed range [start, end].
func (c *Calendar) BusinessDaysBetween(start, end time.Time) int {
	start, end = DateOf(start), DateOf(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsBusinessDay(d) {
			count++
		}
	}
	return count
}
