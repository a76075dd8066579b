package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/topasiaedu/nm-zwds-sub004/internal/config"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	"github.com/topasiaedu/nm-zwds-sub004/internal/observability"
	"github.com/topasiaedu/nm-zwds-sub004/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewHandlers creates a new Handlers instance. logger and metrics may be nil.
func NewHandlers(cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{cfg: cfg, logger: logger, metrics: metrics}
}

// HandleChartCompute handles the chart_compute tool call.
func (h *Handlers) HandleChartCompute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.ChartInput](req)
	if err != nil {
		return h.fail(ToolChartCompute, errors.NewInvalidInput("arguments", err.Error())), nil
	}

	start := time.Now()
	result, err := ops.Chart(ctx, h.cfg, input)
	h.observe(ToolChartCompute, ops.OpChart, start, err)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleChartAnnualFlow handles the chart_annual_flow tool call.
func (h *Handlers) HandleChartAnnualFlow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.FlowInput](req)
	if err != nil {
		return h.fail(ToolChartAnnualFlow, errors.NewInvalidInput("arguments", err.Error())), nil
	}

	start := time.Now()
	result, err := ops.AnnualFlow(ctx, h.cfg, input)
	h.observe(ToolChartAnnualFlow, ops.OpAnnualFlow, start, err)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCalendarLunar handles the calendar_lunar tool call.
func (h *Handlers) HandleCalendarLunar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.LunarInput](req)
	if err != nil {
		return h.fail(ToolCalendarLunar, errors.NewInvalidInput("arguments", err.Error())), nil
	}

	start := time.Now()
	result, err := ops.Lunar(ctx, input)
	h.observe(ToolCalendarLunar, ops.OpLunar, start, err)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// observe logs one tool call and records its metrics.
func (h *Handlers) observe(tool, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	if h.metrics != nil {
		h.metrics.RecordChart(op, elapsed, err)
	}
	fields := []zap.Field{
		zap.String("tool", tool),
		zap.String("request_id", observability.NewRequestID()),
		zap.String("outcome", observability.Outcome(err)),
		zap.Duration("latency", elapsed),
	}
	if err != nil {
		h.logger.Warn("mcp tool call failed", append(fields, zap.Error(err))...)
		return
	}
	h.logger.Info("mcp tool call", fields...)
}

func (h *Handlers) fail(tool string, err error) *mcp.CallToolResult {
	h.logger.Warn("mcp tool arguments rejected", zap.String("tool", tool), zap.Error(err))
	return errorResult(err)
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if cErr, ok := errors.As(err); ok {
		errorObj := map[string]any{
			"code":    cErr.Code,
			"message": cErr.Message,
			"status":  cErr.Status,
		}
		// Internal causes and details stay out of client payloads.
		if cErr.Code == errors.ErrInternal {
			errorObj["message"] = "an internal error occurred"
		} else if cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
