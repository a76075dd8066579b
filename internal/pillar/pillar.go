// Package pillar derives the four sexagenary pillars (year, month, day,
// hour) of a birth moment.
package pillar

import (
	"fmt"

	"github.com/topasiaedu/nm-zwds-sub004/internal/cyclic"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/lunar"
)

// LeapPolicy decides which month number a leap-month birth is read as.
type LeapPolicy string

const (
	LeapSplit   LeapPolicy = "split"   // default: days 1-15 current month, 16+ next month
	LeapCurrent LeapPolicy = "current" // always the leap month's own number
	LeapNext    LeapPolicy = "next"    // always the following month
)

// ParseLeapPolicy validates a policy name. Empty selects LeapSplit.
func ParseLeapPolicy(s string) (LeapPolicy, error) {
	switch LeapPolicy(s) {
	case "":
		return LeapSplit, nil
	case LeapSplit, LeapCurrent, LeapNext:
		return LeapPolicy(s), nil
	}
	return "", errors.NewInvalidInput("leap_policy", fmt.Sprintf("must be one of: split, current, next (got %q)", s))
}

// EffectiveMonth returns the month number (1-12) used for month-keyed lookups.
func EffectiveMonth(d lunar.Date, policy LeapPolicy) int {
	if !d.Leap {
		return d.Month
	}
	next := d.Month%12 + 1
	switch policy {
	case LeapCurrent:
		return d.Month
	case LeapNext:
		return next
	default:
		if d.Day <= 15 {
			return d.Month
		}
		return next
	}
}

// Pillars are the four stem-branch pairs of a birth moment.
type Pillars struct {
	Year  gz.Pair `json:"year"`
	Month gz.Pair `json:"month"`
	Day   gz.Pair `json:"day"`
	Hour  gz.Pair `json:"hour"`

	// MonthNumber is the effective lunar month (1-12) after the leap policy.
	MonthNumber int `json:"month_number"`
}

// dayEpochIndex is the sexagenary index of day number 0 (1900-01-31, Jia-Chen).
const dayEpochIndex = 40

// HourBranch maps a clock hour to its double-hour branch. 23:00 opens Zi.
func HourBranch(hour int) (gz.Branch, error) {
	if hour < 0 || hour > 23 {
		return 0, errors.NewInvalidInput("hour", "must be between 0 and 23")
	}
	return gz.Branch(cyclic.Ring((hour + 1) / 2)), nil
}

// MonthBranch returns the branch of lunar month m; the first month is Yin.
func MonthBranch(month int) gz.Branch {
	if month < 1 || month > 12 {
		errors.Invariant("month branch lookup missed: month %d", month)
	}
	return gz.Yin.Add(month - 1)
}

// DayPair returns the day pillar for a day number from lunar.DayNumber.
func DayPair(dayNumber int) gz.Pair {
	return gz.PairFromIndex(dayEpochIndex + dayNumber)
}

// Compute derives the four pillars from a lunar date, its day number and the
// clock hour.
func Compute(d lunar.Date, dayNumber, hour int, policy LeapPolicy) (Pillars, error) {
	hourBranch, err := HourBranch(hour)
	if err != nil {
		return Pillars{}, err
	}

	year := gz.YearPair(d.Year)
	month := EffectiveMonth(d, policy)
	monthBranch := MonthBranch(month)
	day := DayPair(dayNumber)

	p := Pillars{
		Year:        year,
		Month:       gz.Pair{Stem: MonthStem(year.Stem, monthBranch), Branch: monthBranch},
		Day:         day,
		Hour:        gz.Pair{Stem: HourStem(day.Stem, hourBranch), Branch: hourBranch},
		MonthNumber: month,
	}
	for _, pair := range []gz.Pair{p.Year, p.Month, p.Day, p.Hour} {
		if !pair.Valid() {
			errors.Invariant("pillar %s is not a sexagenary pair", pair)
		}
	}
	return p, nil
}
