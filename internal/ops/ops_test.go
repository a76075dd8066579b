package ops

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/topasiaedu/nm-zwds-sub004/internal/config"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	"github.com/topasiaedu/nm-zwds-sub004/internal/palace"
)

var exampleBirth = BirthInput{Date: "1990-06-15", Hour: 10, Gender: "male", Name: "example"}

func TestParseDate(t *testing.T) {
	y, m, d, err := ParseDate(" 1990-06-15 ")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if y != 1990 || m != 6 || d != 15 {
		t.Errorf("ParseDate = %d-%d-%d, want 1990-6-15", y, m, d)
	}

	for _, bad := range []string{"", "1990/06/15", "1990-06", "1990-xx-15"} {
		if _, _, _, err := ParseDate(bad); !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("ParseDate(%q) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestChart(t *testing.T) {
	c, err := Chart(context.Background(), config.DefaultConfig(), ChartInput{BirthInput: exampleBirth})
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if c.Palace(1).Name != palace.Life {
		t.Errorf("palace 1 = %q, want life", c.Palace(1).Name)
	}
	if c.AnnualFlow != nil {
		t.Error("AnnualFlow should be nil without flow_year")
	}
	if c.Input.Name != "example" {
		t.Errorf("Name = %q, want echoed %q", c.Input.Name, "example")
	}
}

func TestChart_WithFlowYear(t *testing.T) {
	c, err := Chart(context.Background(), config.DefaultConfig(), ChartInput{BirthInput: exampleBirth, FlowYear: 2026})
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if c.AnnualFlow == nil || c.AnnualFlow.Palace != 8 {
		t.Fatalf("AnnualFlow = %+v, want palace 8", c.AnnualFlow)
	}
}

func TestChart_ExplicitFieldsAndNilConfig(t *testing.T) {
	in := BirthInput{Year: 1990, Month: 6, Day: 15, Hour: 10, Gender: "M"}
	c, err := Chart(context.Background(), nil, ChartInput{BirthInput: in})
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if c.Profile.Bureau.String() != "fire-6" {
		t.Errorf("Bureau = %s, want fire-6", c.Profile.Bureau)
	}
}

func TestChart_ConfigDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LimitHorizon = 40

	c, err := Chart(context.Background(), cfg, ChartInput{BirthInput: exampleBirth})
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	last := c.Limits.Major[len(c.Limits.Major)-1]
	if last.EndAge != 45 {
		t.Errorf("last EndAge = %d, want 45 for horizon 40", last.EndAge)
	}

	in := exampleBirth
	in.LimitHorizon = 120
	c, err = Chart(context.Background(), cfg, ChartInput{BirthInput: in})
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if got := len(c.Limits.Major); got != 12 {
		t.Errorf("input horizon override gave %d decades, want 12", got)
	}
}

func TestChart_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   BirthInput
		code errors.ErrorCode
	}{
		{"bad gender", BirthInput{Date: "1990-06-15", Hour: 10, Gender: "?"}, errors.ErrInvalidInput},
		{"bad date", BirthInput{Date: "1990-02-30", Hour: 10, Gender: "male"}, errors.ErrInvalidInput},
		{"out of range", BirthInput{Date: "2150-01-01", Hour: 10, Gender: "male"}, errors.ErrUnsupportedDateRange},
		{"bad leap policy", BirthInput{Date: "1990-06-15", Hour: 10, Gender: "male", LeapPolicy: "x"}, errors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Chart(context.Background(), config.DefaultConfig(), ChartInput{BirthInput: tt.in})
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestAnnualFlow(t *testing.T) {
	out, err := AnnualFlow(context.Background(), config.DefaultConfig(), FlowInput{BirthInput: exampleBirth, FlowYear: 2026})
	if err != nil {
		t.Fatalf("AnnualFlow failed: %v", err)
	}
	if out.Palace != 8 || out.PalaceName != palace.Friends {
		t.Errorf("flow palace = %d %s, want 8 friends", out.Palace, out.PalaceName)
	}
	if out.Flow.Age != 37 {
		t.Errorf("Age = %d, want 37", out.Flow.Age)
	}

	_, err = AnnualFlow(context.Background(), config.DefaultConfig(), FlowInput{BirthInput: exampleBirth})
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("missing year error = %v, want INVALID_INPUT", err)
	}
}

func TestLunar(t *testing.T) {
	out, err := Lunar(context.Background(), LunarInput{Date: "2020-05-25"})
	if err != nil {
		t.Fatalf("Lunar failed: %v", err)
	}
	if !out.Lunar.Leap || out.Lunar.Month != 4 || out.Lunar.Day != 3 {
		t.Errorf("Lunar = %+v, want leap 4/3", out.Lunar)
	}
	if out.LeapMonth != 4 {
		t.Errorf("LeapMonth = %d, want 4", out.LeapMonth)
	}
	if out.Solar != "2020-05-25" {
		t.Errorf("Solar = %q", out.Solar)
	}
	if out.MonthStart != "2020-05-23" {
		t.Errorf("MonthStart = %q, want 2020-05-23", out.MonthStart)
	}

	if _, err := Lunar(context.Background(), LunarInput{Date: "1899-01-01"}); !errors.Is(err, errors.ErrUnsupportedDateRange) {
		t.Errorf("error = %v, want UNSUPPORTED_DATE_RANGE", err)
	}
}

func TestOperationsEmitSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	if _, err := Chart(context.Background(), nil, ChartInput{BirthInput: exampleBirth}); err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if _, err := Lunar(context.Background(), LunarInput{Date: "bad"}); err == nil {
		t.Fatal("Lunar expected error")
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	if spans[0].Name() != "ziwei.chart" {
		t.Errorf("span name = %q, want ziwei.chart", spans[0].Name())
	}
	if len(spans[1].Events()) == 0 {
		t.Error("failed operation should record an error event")
	}
}
