package pillar

import (
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
)

// hourStems is the five-rats table: hour stem by day stem and hour branch.
var hourStems = [10][12]gz.Stem{
	{gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi},    // Jia
	{gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding}, // Yi
	{gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji},     // Bing
	{gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin},  // Ding
	{gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui},   // Wu
	{gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi},    // Ji
	{gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding}, // Geng
	{gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji},     // Xin
	{gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin},  // Ren
	{gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui},   // Gui
}

// monthStems is the five-tigers table: stem of a month (or palace) by year
// stem and branch. Yin carries the first month's stem; Zi and Chou close the
// year as the eleventh and twelfth months.
var monthStems = [10][12]gz.Stem{
	{gz.Bing, gz.Ding, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi}, // Jia
	{gz.Wu, gz.Ji, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding},     // Yi
	{gz.Geng, gz.Xin, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji},  // Bing
	{gz.Ren, gz.Gui, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin},   // Ding
	{gz.Jia, gz.Yi, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui},    // Wu
	{gz.Bing, gz.Ding, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi}, // Ji
	{gz.Wu, gz.Ji, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding},     // Geng
	{gz.Geng, gz.Xin, gz.Geng, gz.Xin, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji},  // Xin
	{gz.Ren, gz.Gui, gz.Ren, gz.Gui, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin},   // Ren
	{gz.Jia, gz.Yi, gz.Jia, gz.Yi, gz.Bing, gz.Ding, gz.Wu, gz.Ji, gz.Geng, gz.Xin, gz.Ren, gz.Gui},    // Gui
}

// HourStem looks up the five-rats table.
func HourStem(day gz.Stem, hour gz.Branch) gz.Stem {
	if !day.Valid() || !hour.Valid() {
		errors.Invariant("hour stem lookup missed: day stem %d, hour branch %d", int(day), int(hour))
	}
	return hourStems[day][hour]
}

// MonthStem looks up the five-tigers table.
func MonthStem(year gz.Stem, month gz.Branch) gz.Stem {
	if !year.Valid() || !month.Valid() {
		errors.Invariant("month stem lookup missed: year stem %d, branch %d", int(year), int(month))
	}
	return monthStems[year][month]
}
