package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/i474232898/weather-cli/internal/config"
	"github.com/i474232898/weather-cli/internal/render"
	"github.com/i474232898/weather-cli/internal/scheduler"
	"github.com/i474232898/weather-cli/internal/weather"
	"github.com/i474232898/weather-cli/internal/weather/providers"
)

// Deps are the process-level collaborators of a run.
type Deps struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Prompter config.Prompter
	Client   *http.Client
	Logger   *slog.Logger

	// Terminal reports whether Stdout is a terminal; color and progress
	// marks default to on only for terminals.
	Terminal bool
	Render   render.Options
}

// Run executes the validate -> fetch -> extract -> style -> render pipeline
// once, or repeatedly in watch mode. Every failure is reported on Stderr
// before being returned.
func Run(ctx context.Context, cfg *config.AppConfig, deps Deps) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := cfg.Location.Validate(); err != nil {
		return report(deps.Stderr, err)
	}

	key, err := cfg.ResolveAPIKey(deps.Prompter)
	if err != nil {
		return report(deps.Stderr, fmt.Errorf("%w: %v", weather.ErrMissingCredential, err))
	}
	if key == "" {
		return report(deps.Stderr, weather.ErrMissingCredential)
	}

	client := deps.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	provider := providers.NewOpenWeatherProvider(client, key,
		providers.WithBaseURL(cfg.BaseURL),
		providers.WithLogger(logger),
	)
	service := weather.NewService(provider, logger)

	opts := deps.Render
	opts.Color = deps.Terminal && !cfg.NoColor
	opts.Progress = deps.Terminal && !cfg.NoProgress
	renderer := render.New(deps.Stdout, opts)

	once := func(ctx context.Context) error {
		rep, err := service.Current(ctx, cfg.Location)
		if err != nil {
			return err
		}
		return renderer.Render(rep)
	}

	if cfg.Watch <= 0 {
		if err := once(ctx); err != nil {
			return report(deps.Stderr, err)
		}
		return nil
	}

	logger.Info("watching weather", "location", cfg.Location.Key(), "interval", cfg.Watch)
	return scheduler.New(cfg.Watch, logger).Run(ctx, func(ctx context.Context) {
		// A failed tick is reported and the next one tries again.
		if err := once(ctx); err != nil && ctx.Err() == nil {
			_ = report(deps.Stderr, err)
		}
	})
}

// report writes the user-facing line for err and returns err unchanged.
func report(w io.Writer, err error) error {
	fmt.Fprintln(w, Message(err))
	return err
}

// Message turns a pipeline error into the line shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, weather.ErrMissingLocation):
		return "You must provide either a city name or latitude and longitude coordinates."
	case errors.Is(err, weather.ErrIncompleteCoordinates), errors.Is(err, weather.ErrInvalidCoordinates):
		return "Invalid location: " + err.Error()
	case errors.Is(err, weather.ErrMissingCredential):
		return fmt.Sprintf("An OpenWeatherMap API key is required (use -api-key or set %s).", config.APIKeyEnv)
	case errors.Is(err, weather.ErrFetchFailed):
		return "Error fetching weather data: " + strings.TrimPrefix(err.Error(), weather.ErrFetchFailed.Error()+": ")
	case errors.Is(err, weather.ErrMalformedResponse):
		return "Unexpected response from weather provider: " + strings.TrimPrefix(err.Error(), weather.ErrMalformedResponse.Error()+": ")
	default:
		return "Error: " + err.Error()
	}
}
