package ops

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/topasiaedu/nm-zwds-sub004/internal/chart"
	"github.com/topasiaedu/nm-zwds-sub004/internal/config"
	gz "github.com/topasiaedu/nm-zwds-sub004/internal/ganzhi"
	"github.com/topasiaedu/nm-zwds-sub004/internal/palace"
	"github.com/topasiaedu/nm-zwds-sub004/internal/timing"
)

// ChartInput contains parameters for the Chart operation.
type ChartInput struct {
	BirthInput

	// FlowYear, when non-zero, attaches that year's Annual Flow overlay.
	FlowYear int `json:"flow_year,omitempty"`
}

// Chart computes a full chart.
func Chart(ctx context.Context, cfg *config.Config, input ChartInput) (c *chart.Chart, err error) {
	_, span := startSpan(ctx, OpChart, attribute.Int("flow_year", input.FlowYear))
	defer func() { endSpan(span, err) }()

	birth, opts, err := input.resolve(cfg)
	if err != nil {
		return nil, err
	}
	c, err = chart.Compute(birth, opts)
	if err != nil {
		return nil, err
	}
	if input.FlowYear != 0 {
		return chart.WithAnnualFlow(c, input.FlowYear)
	}
	return c, nil
}

// FlowInput contains parameters for the AnnualFlow operation.
type FlowInput struct {
	BirthInput
	FlowYear int `json:"flow_year"`
}

// FlowOutput contains the result of the AnnualFlow operation.
type FlowOutput struct {
	Palace     int         `json:"palace"`
	PalaceName palace.Name `json:"palace_name"`
	Branch     gz.Branch   `json:"branch"`
	Flow       timing.Flow `json:"flow"`
}

// AnnualFlow computes the chart and reports which palace rules input.FlowYear.
func AnnualFlow(ctx context.Context, cfg *config.Config, input FlowInput) (out *FlowOutput, err error) {
	_, span := startSpan(ctx, OpAnnualFlow, attribute.Int("flow_year", input.FlowYear))
	defer func() { endSpan(span, err) }()

	birth, opts, err := input.resolve(cfg)
	if err != nil {
		return nil, err
	}
	c, err := chart.Compute(birth, opts)
	if err != nil {
		return nil, err
	}
	flowed, err := chart.WithAnnualFlow(c, input.FlowYear)
	if err != nil {
		return nil, err
	}

	p := flowed.Palace(flowed.AnnualFlow.Palace)
	return &FlowOutput{
		Palace:     p.Index,
		PalaceName: p.Name,
		Branch:     p.Branch,
		Flow:       *flowed.AnnualFlow,
	}, nil
}
