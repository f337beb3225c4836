package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	ISODateLayout = "2006-01-02"
	DayDateLayout = "02/01/2006"
	ClockLayout   = "15:04"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// ParseDayDate parses a calendar date written DD/MM/YYYY (single-digit day
// and month allowed) or YYYY-MM-DD. The result is midnight UTC.
func ParseDayDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if t, err := time.Parse(ISODateLayout, s); err == nil {
		return t, nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 31/02 into March; reject that.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// NormalizeISODate converts either accepted date form into YYYY-MM-DD.
func NormalizeISODate(s string) (string, error) {
	t, err := ParseDayDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(ISODateLayout), nil
}

// ISODate formats t as YYYY-MM-DD in its own location.
func ISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// DayDate formats t as DD/MM/YYYY in its own location.
func DayDate(t time.Time) string {
	return t.Format(DayDateLayout)
}

// ParseClock returns the minutes since midnight of an HH:MM (or HH:MM:SS)
// time of day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// PeriodKey identifies a payroll month, e.g. "2024-03".
func PeriodKey(month, year int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthLabelFR returns the French label of a month, e.g. "mars 2024".
func MonthLabelFR(month, year int) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(year)
	}
	return frenchMonths[month-1] + " " + strconv.Itoa(year)
}
