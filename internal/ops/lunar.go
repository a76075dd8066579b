package ops

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/lunar"
	"github.com/topasiaedu/nm-zwds-sub004/internal/pillar"
)

// LunarInput contains parameters for the Lunar operation.
type LunarInput struct {
	Date string `json:"date"`
}

// LunarOutput contains the result of the Lunar operation.
type LunarOutput struct {
	Solar     string     `json:"solar"`
	Lunar     lunar.Date `json:"lunar"`
	Text      string     `json:"text"`
	YearPair  gz.Pair    `json:"year_pillar"`
	DayPair   gz.Pair    `json:"day_pillar"`
	LeapMonth int        `json:"leap_month"`
	MonthDays int        `json:"month_days"`

	// MonthStart is the Gregorian date of the first day of the lunar month.
	MonthStart string `json:"month_start"`
}

// Lunar converts a Gregorian date to its lunar date and calendar pillars.
func Lunar(ctx context.Context, input LunarInput) (out *LunarOutput, err error) {
	_, span := startSpan(ctx, OpLunar, attribute.String("date", input.Date))
	defer func() { endSpan(span, err) }()

	year, month, day, err := ParseDate(input.Date)
	if err != nil {
		return nil, err
	}
	n, err := lunar.DayNumber(year, month, day)
	if err != nil {
		return nil, err
	}
	d := lunar.FromDayNumber(n)

	days := lunar.MonthDays(d.Year, d.Month)
	if d.Leap {
		days = lunar.LeapMonthDays(d.Year)
	}
	start, err := lunar.ToSolar(lunar.Date{Year: d.Year, Month: d.Month, Leap: d.Leap, Day: 1})
	if err != nil {
		return nil, err
	}

	return &LunarOutput{
		Solar:      fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Lunar:      d,
		Text:       d.String(),
		YearPair:   gz.YearPair(d.Year),
		DayPair:    pillar.DayPair(n),
		LeapMonth:  lunar.LeapMonth(d.Year),
		MonthDays:  days,
		MonthStart: start.Format(time.DateOnly),
	}, nil
}
