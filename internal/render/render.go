package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/i474232898/weather-cli/internal/weather"
)

const (
	progressMarks = 3
	progressDelay = 500 * time.Millisecond
)

// Options controls terminal-dependent behaviour of a Renderer.
type Options struct {
	Color    bool
	Progress bool
	// Sleep is used between progress marks; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Renderer writes a Report as colored, icon-prefixed lines.
type Renderer struct {
	out  io.Writer
	opts Options
}

func New(out io.Writer, opts Options) *Renderer {
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Renderer{out: out, opts: opts}
}

// Render writes the header, the four detail lines and, if enabled, the progress marks.
func (r *Renderer) Render(report weather.Report) error {
	style := LookupStyle(report.Category)

	header := r.colorize(color.Bold)
	body := r.colorize(style.Color)

	if _, err := header.Fprintf(r.out, "Weather in %s:", report.Place); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.out); err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("Temperature: %s °C", formatFloat(report.TemperatureC)),
		fmt.Sprintf("Condition: %s", capitalize(report.Description)),
		fmt.Sprintf("Humidity: %d%%", report.HumidityPct),
		fmt.Sprintf("Wind Speed: %s m/s", formatFloat(report.WindSpeedMS)),
	}
	for _, line := range lines {
		if _, err := body.Fprintf(r.out, "  %s %s", style.Icon, line); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.out); err != nil {
			return err
		}
	}

	if !r.opts.Progress {
		return nil
	}
	for i := 0; i < progressMarks; i++ {
		if _, err := io.WriteString(r.out, "."); err != nil {
			return err
		}
		r.opts.Sleep(progressDelay)
	}
	_, err := io.WriteString(r.out, " Done!\n")
	return err
}

func (r *Renderer) colorize(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if r.opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// formatFloat prints the shortest representation that round-trips, always
// keeping one decimal place ("15" becomes "15.0").
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
