package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	ToolChartCompute    = "chart_compute"
	ToolChartAnnualFlow = "chart_annual_flow"
	ToolCalendarLunar   = "calendar_lunar"
)

func birthOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Gregorian birth date, YYYY-MM-DD, between 1900-01-31 and 2100-12-31"),
		),
		mcp.WithNumber("hour",
			mcp.Required(),
			mcp.Description("Birth hour on a 24-hour clock (0-23); 23:00 opens the Zi double hour"),
			mcp.Min(0),
			mcp.Max(23),
		),
		mcp.WithNumber("minute",
			mcp.Description("Birth minute (0-59); accepted but does not change the double hour"),
			mcp.Min(0),
			mcp.Max(59),
		),
		mcp.WithString("gender",
			mcp.Required(),
			mcp.Description("Gender of the subject; decides the limit direction together with the year polarity"),
			mcp.Enum("male", "female"),
		),
		mcp.WithString("name",
			mcp.Description("Display name, echoed back unchanged"),
		),
		mcp.WithString("leap_policy",
			mcp.Description("How a leap-month birth is read: split (default), current or next"),
			mcp.Enum("split", "current", "next"),
		),
		mcp.WithNumber("limit_horizon",
			mcp.Description("Age the Major Limits must reach (default 120)"),
		),
	}
}

var chartComputeToolDef = mcp.NewTool(ToolChartCompute, append([]mcp.ToolOption{
	mcp.WithDescription("Compute a full Zi Wei Dou Shu chart: lunar date, four pillars, bureau, " +
		"twelve palaces with stars, brightness, transformations, overlays and Major Limits."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithNumber("flow_year",
		mcp.Description("Optional target year; attaches its Annual Flow overlay to the chart"),
	),
}, birthOptions()...)...)

var chartAnnualFlowToolDef = mcp.NewTool(ToolChartAnnualFlow, append([]mcp.ToolOption{
	mcp.WithDescription("Find the palace that rules a target year (Annual Flow) for a birth chart, " +
		"with that year's pillar, transformations, nominal age and covering Major Limit."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithNumber("flow_year",
		mcp.Required(),
		mcp.Description("Target Gregorian year, 1-9999; years before the birth year report age 0"),
	),
}, birthOptions()...)...)

var calendarLunarToolDef = mcp.NewTool(ToolCalendarLunar,
	mcp.WithDescription("Convert a Gregorian date to the Chinese lunar calendar, "+
		"including the leap flag and the year and day pillars."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("date",
		mcp.Required(),
		mcp.Description("Gregorian date, YYYY-MM-DD"),
	),
)
