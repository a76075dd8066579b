package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/topasiaedu/nm-zwds-sub004/internal/config"
	"github.com/topasiaedu/nm-zwds-sub004/internal/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const exampleBody = `{"date":"1990-06-15","hour":10,"gender":"male","name":"example"}`

func setupTest(t *testing.T) (http.Handler, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	srv, err := NewServer(config.DefaultConfig(), zap.NewNop(), metrics, "test")
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv.Handler, metrics
}

func do(t *testing.T, h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v\n%s", err, rec.Body.String())
	}
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := decodeJSON(t, rec)["error"].(map[string]any)
	if !ok {
		t.Fatalf("response has no error object: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// --- POST /v1/charts ---

func TestHandleChart(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodPost, "/v1/charts", exampleBody, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get(observability.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	out := decodeJSON(t, rec)
	palaces := out["palaces"].([]any)
	if len(palaces) != 12 {
		t.Fatalf("palaces = %d, want 12", len(palaces))
	}
	property := palaces[9].(map[string]any)
	if property["name"] != "property" {
		t.Errorf("palace 10 name = %v, want property", property["name"])
	}
	mainStars := property["main_stars"].([]any)
	if len(mainStars) == 0 || mainStars[0].(map[string]any)["id"] != "zi_wei" {
		t.Errorf("palace 10 main stars = %v, want zi_wei first", mainStars)
	}
	if _, ok := out["annual_flow"]; ok {
		t.Error("annual_flow should be omitted without flow_year")
	}
}

func TestHandleChart_Errors(t *testing.T) {
	h, _ := setupTest(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed json", `{"date":`, 400, "INVALID_INPUT"},
		{"unknown field", `{"date":"1990-06-15","hour":10,"gender":"male","tz":"UTC"}`, 400, "INVALID_INPUT"},
		{"trailing data", exampleBody + `{}`, 400, "INVALID_INPUT"},
		{"hour out of range", `{"date":"1990-06-15","hour":24,"gender":"male"}`, 400, "INVALID_INPUT"},
		{"bad gender", `{"date":"1990-06-15","hour":10,"gender":"other"}`, 400, "INVALID_INPUT"},
		{"before table", `{"date":"1899-12-31","hour":10,"gender":"male"}`, 422, "UNSUPPORTED_DATE_RANGE"},
		{"after table", `{"date":"2101-01-01","hour":10,"gender":"female"}`, 422, "UNSUPPORTED_DATE_RANGE"},
		{"bad leap policy", `{"date":"1990-06-15","hour":10,"gender":"male","leap_policy":"x"}`, 400, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/charts", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestHandleChart_WithFlowYear(t *testing.T) {
	h, _ := setupTest(t)

	body := `{"date":"1990-06-15","hour":10,"gender":"male","flow_year":2026}`
	rec := do(t, h, http.MethodPost, "/v1/charts", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeJSON(t, rec)
	flow := out["annual_flow"].(map[string]any)
	if flow["palace"] != float64(8) {
		t.Errorf("annual_flow.palace = %v, want 8", flow["palace"])
	}

	flowed := 0
	for _, p := range out["palaces"].([]any) {
		if p.(map[string]any)["is_annual_flow"] == true {
			flowed++
		}
	}
	if flowed != 1 {
		t.Errorf("palaces flagged as annual flow = %d, want 1", flowed)
	}
}

// --- POST /v1/charts/annual-flow ---

func TestHandleAnnualFlow(t *testing.T) {
	h, _ := setupTest(t)

	body := `{"date":"1990-06-15","hour":10,"gender":"male","flow_year":2027}`
	rec := do(t, h, http.MethodPost, "/v1/charts/annual-flow", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeJSON(t, rec)
	if out["palace"] != float64(7) {
		t.Errorf("palace = %v, want 7", out["palace"])
	}

	body = `{"date":"1990-06-15","hour":10,"gender":"male","flow_year":10000}`
	rec = do(t, h, http.MethodPost, "/v1/charts/annual-flow", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnnualFlow_BeforeBirthYear(t *testing.T) {
	h, _ := setupTest(t)

	body := `{"date":"1990-06-15","hour":10,"gender":"male","flow_year":1980}`
	rec := do(t, h, http.MethodPost, "/v1/charts/annual-flow", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	out := decodeJSON(t, rec)
	if out["branch"] != "Shen" {
		t.Errorf("branch = %v, want Shen", out["branch"])
	}
	flow := out["flow"].(map[string]any)
	if flow["age"] != float64(0) || flow["major_limit"] != float64(0) {
		t.Errorf("age = %v, major_limit = %v, want 0 and 0", flow["age"], flow["major_limit"])
	}
}

// --- GET /v1/lunar ---

func TestHandleLunar(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/v1/lunar?date=2020-05-25", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	l := decodeJSON(t, rec)["lunar"].(map[string]any)
	if l["month"] != float64(4) || l["leap"] != true || l["day"] != float64(3) {
		t.Errorf("lunar = %v, want leap month 4 day 3", l)
	}
	if start := decodeJSON(t, rec)["month_start"]; start != "2020-05-23" {
		t.Errorf("month_start = %v, want 2020-05-23", start)
	}

	rec = do(t, h, http.MethodGet, "/v1/lunar", "", nil)
	if code := errorCode(t, rec); code != "INVALID_INPUT" {
		t.Errorf("missing date code = %q", code)
	}
}

// --- pages ---

func TestHandleIndex(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<h2>JSON API</h2>") {
		t.Error("index should render the markdown guide")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing security headers")
	}
}

func TestHandleNotFound(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/v1/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", code)
	}

	rec = do(t, h, http.MethodGet, "/chart?date=1990-06-15&hour=10&gender=male", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("chart page status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want html error page", ct)
	}
	if !strings.Contains(rec.Body.String(), "NOT_FOUND") {
		t.Error("error page should show the code")
	}
}

// --- operational ---

func TestHealthzAndMetrics(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK || decodeJSON(t, rec)["status"] != "ok" {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}

	do(t, h, http.MethodPost, "/v1/charts", exampleBody, nil)
	rec = do(t, h, http.MethodGet, "/metrics", "", nil)
	body := rec.Body.String()
	for _, want := range []string{
		`ziwei_charts_total{outcome="ok"} 1`,
		`ziwei_http_requests_total{method="POST",status="200"} 1`,
		"ziwei_chart_duration_seconds_bucket",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestStaticAndNotFound(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/static/style.css", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("static status = %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/v1/charts", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/charts status = %d, want 405", rec.Code)
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HTTPPort = 0
	srv, err := NewServer(cfg, zap.NewNop(), nil, "test")
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
