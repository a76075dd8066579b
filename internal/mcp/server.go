package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/topasiaedu/nm-zwds-sub004/internal/config"
	"github.com/topasiaedu/nm-zwds-sub004/internal/observability"
)

// ServerName is the MCP server's advertised name.
const ServerName = "ziwei"

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	ToolChartCompute: {
		def:     chartComputeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleChartCompute },
	},
	ToolChartAnnualFlow: {
		def:     chartAnnualFlowToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleChartAnnualFlow },
	},
	ToolCalendarLunar: {
		def:     calendarLunarToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCalendarLunar },
	},
}

// AllToolNames returns all valid tool names, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the chart tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(cfg, logger, metrics)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for _, name := range AllToolNames() {
		if disabled[name] {
			continue
		}
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(cfg *config.Config, logger *zap.Logger, version string) error {
	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}
	s := NewServer(cfg, logger, nil, version)
	logger.Info("mcp server starting", zap.String("transport", "stdio"), zap.Strings("tools", AllToolNames()))
	return server.ServeStdio(s)
}
