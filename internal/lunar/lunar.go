// Package lunar converts Gregorian dates to the Chinese lunisolar calendar
// over the fixed 1900-2100 table.
package lunar

import (
	"fmt"
	"time"

	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
)

// Supported lunar years.
const (
	MinYear = 1900
	MaxYear = 2100
)

// epoch is lunar 1900-01-01, day number 0.
var epoch = time.Date(1900, time.January, 31, 0, 0, 0, 0, time.UTC)

// Date is a lunar calendar date.
type Date struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Leap  bool `json:"leap"`
	Day   int  `json:"day"`
}

func (d Date) String() string {
	leap := ""
	if d.Leap {
		leap = "leap "
	}
	return fmt.Sprintf("%d %smonth %d day %d", d.Year, leap, d.Month, d.Day)
}

func info(year int) uint32 {
	if year < MinYear || year > MaxYear {
		errors.Invariant("lunar year %d outside table", year)
	}
	return yearInfo[year-MinYear]
}

// LeapMonth returns the leap month number of year, or 0 if it has none.
func LeapMonth(year int) int {
	return int(info(year) & 0xf)
}

// LeapMonthDays returns the length of year's leap month, or 0.
func LeapMonthDays(year int) int {
	if LeapMonth(year) == 0 {
		return 0
	}
	if info(year)&0x10000 != 0 {
		return 30
	}
	return 29
}

// MonthDays returns the length of ordinary month m (1-12) of year.
func MonthDays(year, month int) int {
	if month < 1 || month > 12 {
		errors.Invariant("lunar month %d out of range", month)
	}
	if info(year)&(0x10000>>uint(month)) != 0 {
		return 30
	}
	return 29
}

// YearDays returns the number of days in lunar year, leap month included.
func YearDays(year int) int {
	days := 0
	for m := 1; m <= 12; m++ {
		days += MonthDays(year, m)
	}
	return days + LeapMonthDays(year)
}

// DayNumber validates a Gregorian date and returns the number of days since
// lunar 1900-01-01 (Gregorian 1900-01-31).
func DayNumber(year, month, day int) (int, error) {
	if month < 1 || month > 12 {
		return 0, errors.NewInvalidInput("month", "must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return 0, errors.NewInvalidInput("day", "must be between 1 and 31")
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return 0, errors.NewInvalidInput("day", fmt.Sprintf("%04d-%02d has no day %d", year, month, day))
	}
	n := int(t.Sub(epoch).Hours() / 24)
	if year > MaxYear || n < 0 {
		return 0, errors.NewUnsupportedDateRange(t.Format(time.DateOnly), MinYear, MaxYear)
	}
	return n, nil
}

// FromDayNumber converts a day number to its lunar date. n must lie within
// the table.
func FromDayNumber(n int) Date {
	if n < 0 || n >= yearStart[len(yearStart)-1] {
		errors.Invariant("day number %d outside lunar table", n)
	}

	year := MinYear
	for yearStart[year-MinYear+1] <= n {
		year++
	}
	offset := n - yearStart[year-MinYear]

	leap := LeapMonth(year)
	for month := 1; month <= 12; month++ {
		days := MonthDays(year, month)
		if offset < days {
			return Date{Year: year, Month: month, Day: offset + 1}
		}
		offset -= days
		if month == leap {
			days = LeapMonthDays(year)
			if offset < days {
				return Date{Year: year, Month: month, Leap: true, Day: offset + 1}
			}
			offset -= days
		}
	}
	errors.Invariant("day number %d overflowed lunar year %d", n, year)
	return Date{}
}

// ToSolar converts a lunar date back to its Gregorian date (UTC midnight).
func ToSolar(d Date) (time.Time, error) {
	if d.Year < MinYear || d.Year > MaxYear {
		return time.Time{}, errors.NewUnsupportedDateRange(fmt.Sprintf("lunar %d", d.Year), MinYear, MaxYear)
	}
	if d.Month < 1 || d.Month > 12 {
		return time.Time{}, errors.NewInvalidInput("month", "must be between 1 and 12")
	}
	if d.Leap && LeapMonth(d.Year) != d.Month {
		return time.Time{}, errors.NewInvalidInput("leap", fmt.Sprintf("lunar year %d has no leap month %d", d.Year, d.Month))
	}
	limit := MonthDays(d.Year, d.Month)
	if d.Leap {
		limit = LeapMonthDays(d.Year)
	}
	if d.Day < 1 || d.Day > limit {
		return time.Time{}, errors.NewInvalidInput("day", fmt.Sprintf("must be between 1 and %d", limit))
	}

	n := yearStart[d.Year-MinYear]
	leap := LeapMonth(d.Year)
	for m := 1; m < d.Month; m++ {
		n += MonthDays(d.Year, m)
		if m == leap {
			n += LeapMonthDays(d.Year)
		}
	}
	if d.Leap {
		n += MonthDays(d.Year, d.Month)
	}
	n += d.Day - 1

	if n >= yearStart[len(yearStart)-1] {
		return time.Time{}, errors.NewUnsupportedDateRange(d.String(), MinYear, MaxYear)
	}
	return epoch.AddDate(0, 0, n), nil
}
