package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalPrompterReadsLine(t *testing.T) {
	var out bytes.Buffer
	p := TerminalPrompter{In: strings.NewReader("  abc123  \nignored\n"), Out: &out}

	got, err := p.Prompt("Your OpenWeatherMap API key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("expected trimmed key, got %q", got)
	}
	if out.String() != "Your OpenWeatherMap API key: " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestTerminalPrompterEOF(t *testing.T) {
	p := TerminalPrompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	got, err := p.Prompt("key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty answer, got %q", got)
	}
}
