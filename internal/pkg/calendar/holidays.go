package calendar

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

//go:embed holidays.json
var defaultHolidays []byte

// HolidayTable lists holidays by month-day ("MM-DD"). It is read once at
// startup and handed to New; the calendar never reloads it.
type HolidayTable struct {
	Version            string            `json:"version"`
	Fixed              []string          `json:"fixed"`
	ApproximateMovable []string          `json:"approximate_movable"`
	Descriptions       map[string]string `json:"descriptions"`
}

// All returns fixed and approximate movable holidays together.
func (t HolidayTable) All() []string {
	all := make([]string, 0, len(t.Fixed)+len(t.ApproximateMovable))
	all = append(all, t.Fixed...)
	return append(all, t.ApproximateMovable...)
}

// ParseHolidayTable decodes and validates a JSON holiday table.
func ParseHolidayTable(data []byte) (HolidayTable, error) {
	var table HolidayTable
	if err := json.Unmarshal(data, &table); err != nil {
		return HolidayTable{}, fmt.Errorf("failed to unmarshal holiday table: %w", err)
	}

	for _, md := range table.All() {
		if _, err := time.Parse("01-02", md); err != nil {
			return HolidayTable{}, fmt.Errorf("invalid holiday %q: expected MM-DD", md)
		}
	}
	if table.Descriptions == nil {
		table.Descriptions = map[string]string{}
	}

	return table, nil
}

// LoadHolidayTable reads a holiday table from a JSON file.
func LoadHolidayTable(path string) (HolidayTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HolidayTable{}, fmt.Errorf("failed to read holiday table: %w", err)
	}
	return ParseHolidayTable(data)
}

// DefaultHolidayTable returns the holiday table shipped with the binary.
func DefaultHolidayTable() HolidayTable {
	table, err := ParseHolidayTable(defaultHolidays)
	if err != nil {
		panic("calendar: embedded holiday table is invalid: " + err.Error())
	}
	return table
}
