package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-cli/internal/weather"
)

var london = weather.Report{
	Place:        "London",
	Category:     weather.ConditionClear,
	Description:  "clear sky",
	TemperatureC: 15.2,
	HumidityPct:  60,
	WindSpeedMS:  3.4,
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, Options{}).Render(london); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Weather in London:\n" +
		"  ☀ Temperature: 15.2 °C\n" +
		"  ☀ Condition: Clear sky\n" +
		"  ☀ Humidity: 60%\n" +
		"  ☀ Wind Speed: 3.4 m/s\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderColored(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, Options{Color: true}).Render(london); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"London", "15.2 °C", "Humidity: 60%", "Wind Speed: 3.4 m/s", "\x1b[1m", "\x1b[33m"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}

func TestRenderProgress(t *testing.T) {
	var (
		buf    bytes.Buffer
		sleeps []time.Duration
	)
	r := New(&buf, Options{Progress: true, Sleep: func(d time.Duration) { sleeps = append(sleeps, d) }})
	if err := r.Render(london); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(buf.String(), "\n... Done!\n") {
		t.Fatalf("expected progress marks at the end, got %q", buf.String())
	}
	if len(sleeps) != 3 {
		t.Fatalf("expected 3 delays, got %d", len(sleeps))
	}
	for _, d := range sleeps {
		if d != 500*time.Millisecond {
			t.Fatalf("expected 500ms delay, got %v", d)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := New(&a, Options{Color: true}).Render(london); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := New(&b, Options{Color: true}).Render(london); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("expected identical output, got %q and %q", a.String(), b.String())
	}
}

func TestRenderUnknownCondition(t *testing.T) {
	var buf bytes.Buffer
	report := london
	report.Category = "tornado"
	report.Description = "TORNADO warning"
	report.TemperatureC = 20

	if err := New(&buf, Options{}).Render(report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"  ? Temperature: 20.0 °C", "  ? Condition: Tornado warning"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		15.2:  "15.2",
		15:    "15.0",
		-3.25: "-3.25",
		0:     "0.0",
	}
	for in, want := range tests {
		if got := formatFloat(in); got != want {
			t.Fatalf("formatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
