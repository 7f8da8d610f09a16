package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, "weather-cli")

	logger.Info("hidden")
	logger.Warn("shown", "city", "London")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %q", out)
	}
	for _, want := range []string{"shown", "city=London", "app=weather-cli"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for a non-terminal writer: %q", out)
	}
}
