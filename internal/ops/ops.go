// Package ops is the operation layer shared by the CLI, MCP and HTTP
// surfaces. It parses surface-level input, applies configuration defaults and
// calls the chart engine inside a tracing span.
package ops

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/topasiaedu/nm-zwds-sub004/internal/chart"
	"github.com/topasiaedu/nm-zwds-sub004/internal/config"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	"github.com/topasiaedu/nm-zwds-sub004/internal/observability"
	"github.com/topasiaedu/nm-zwds-sub004/internal/pillar"
	"github.com/topasiaedu/nm-zwds-sub004/internal/profile"
)

// Operation names, used as span and metric labels.
const (
	OpChart      = "chart"
	OpAnnualFlow = "annual_flow"
	OpLunar      = "lunar"
)

// ParseDate splits a YYYY-MM-DD string. Range and calendar checks are left to
// the engine so every surface reports them the same way.
func ParseDate(s string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, errors.NewInvalidInput("date", fmt.Sprintf("must be YYYY-MM-DD (got %q)", s))
	}
	var nums [3]int
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, errors.NewInvalidInput("date", fmt.Sprintf("must be YYYY-MM-DD (got %q)", s))
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// BirthInput is the birth moment as surfaces receive it. Date, when set,
// takes precedence over Year/Month/Day.
type BirthInput struct {
	Date   string `json:"date,omitempty"`
	Year   int    `json:"year,omitempty"`
	Month  int    `json:"month,omitempty"`
	Day    int    `json:"day,omitempty"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute,omitempty"`
	Gender string `json:"gender"`
	Name   string `json:"name,omitempty"`

	// LeapPolicy and LimitHorizon override the configured values when set.
	LeapPolicy   string `json:"leap_policy,omitempty"`
	LimitHorizon int    `json:"limit_horizon,omitempty"`
}

func (in BirthInput) resolve(cfg *config.Config) (chart.BirthInput, chart.Options, error) {
	year, month, day := in.Year, in.Month, in.Day
	if in.Date != "" {
		var err error
		if year, month, day, err = ParseDate(in.Date); err != nil {
			return chart.BirthInput{}, chart.Options{}, err
		}
	}
	gender, err := profile.ParseGender(strings.TrimSpace(in.Gender))
	if err != nil {
		return chart.BirthInput{}, chart.Options{}, err
	}

	opts := chart.Options{LeapPolicy: pillar.LeapPolicy(in.LeapPolicy), LimitHorizon: in.LimitHorizon}
	if cfg != nil {
		if opts.LeapPolicy == "" {
			opts.LeapPolicy = pillar.LeapPolicy(cfg.LeapPolicy)
		}
		if opts.LimitHorizon == 0 {
			opts.LimitHorizon = cfg.LimitHorizon
		}
	}

	return chart.BirthInput{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   in.Hour,
		Minute: in.Minute,
		Gender: gender,
		Name:   in.Name,
	}, opts, nil
}

// startSpan opens an operation span on the global tracer.
func startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return observability.Tracer().Start(ctx, "ziwei."+op, trace.WithAttributes(attrs...))
}

// endSpan records err on span and closes it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
