package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/topasiaedu/nm-zwds-sub004/internal/config"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	"github.com/topasiaedu/nm-zwds-sub004/internal/observability"
	"github.com/topasiaedu/nm-zwds-sub004/internal/ops"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// notFoundCode is reported for unknown routes. It is a transport condition,
// not one of the engine's error kinds.
const notFoundCode = "NOT_FOUND"

// Handlers contains HTTP route handlers for the chart API and pages.
type Handlers struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Metrics
	renderer *Renderer
	help     []byte
}

// HandleIndex handles GET /: the landing page with the usage guide.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "index", IndexPageData{
		PageData: PageData{Title: "Zi Wei Dou Shu", Version: h.renderer.version},
		Help:     renderMarkdown(h.help),
	})
}

// HandleChart handles POST /v1/charts.
func (h *Handlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	var input ops.ChartInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, asChartError(err))
		return
	}

	start := time.Now()
	c, err := ops.Chart(r.Context(), h.cfg, input)
	h.record(ops.OpChart, start, err)
	if err != nil {
		writeError(w, asChartError(err))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleAnnualFlow handles POST /v1/charts/annual-flow.
func (h *Handlers) HandleAnnualFlow(w http.ResponseWriter, r *http.Request) {
	var input ops.FlowInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, asChartError(err))
		return
	}

	start := time.Now()
	out, err := ops.AnnualFlow(r.Context(), h.cfg, input)
	h.record(ops.OpAnnualFlow, start, err)
	if err != nil {
		writeError(w, asChartError(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleLunar handles GET /v1/lunar?date=YYYY-MM-DD.
func (h *Handlers) HandleLunar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	out, err := ops.Lunar(r.Context(), ops.LunarInput{Date: r.URL.Query().Get("date")})
	h.record(ops.OpLunar, start, err)
	if err != nil {
		writeError(w, asChartError(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleNotFound answers unknown routes: the JSON error envelope under /v1,
// the error page elsewhere.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	msg := fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path)
	if strings.HasPrefix(r.URL.Path, "/v1/") {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{
			"code":    notFoundCode,
			"message": msg,
			"status":  http.StatusNotFound,
		}})
		return
	}
	h.renderer.renderPageStatus(w, http.StatusNotFound, "error", ErrorPageData{
		PageData:   PageData{Title: "Not found", Version: h.renderer.version},
		StatusCode: http.StatusNotFound,
		Code:       notFoundCode,
		Message:    msg,
	})
}

// HandleHealthz handles GET /healthz.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": h.renderer.version})
}

func (h *Handlers) record(op string, start time.Time, err error) {
	if h.metrics != nil {
		h.metrics.RecordChart(op, time.Since(start), err)
	}
	if err != nil {
		h.logger.Debug("chart operation failed", zap.String("operation", op), zap.Error(err))
	}
}

// decodeBody reads a JSON body into dst, rejecting unknown fields and
// trailing data.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewInvalidInput("body", err.Error())
	}
	if dec.More() {
		return errors.NewInvalidInput("body", "unexpected data after JSON object")
	}
	return nil
}
