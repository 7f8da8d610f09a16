package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for a value interactively.
type Prompter interface {
	Prompt(label string) (string, error)
}

// TerminalPrompter reads from In and writes the label to Out. When In is a
// terminal the typed value is not echoed.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p TerminalPrompter) Prompt(label string) (string, error) {
	if _, err := fmt.Fprintf(p.Out, "%s: ", label); err != nil {
		return "", err
	}

	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ResolveAPIKey returns the configured key, prompting when none was given
// by flag or environment.
func (c *AppConfig) ResolveAPIKey(p Prompter) (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if p == nil {
		return "", errors.New("no api key configured and no prompt available")
	}

	key, err := p.Prompt("Your OpenWeatherMap API key")
	if err != nil {
		return "", err
	}
	c.APIKey = key
	return key, nil
}
