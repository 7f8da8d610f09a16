package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-cli/internal/weather"
)

const (
	// APIKeyEnv supplies the default credential when -api-key is omitted.
	APIKeyEnv = "WEATHER_API_KEY"

	defaultHTTPTimeout = "10s"
	defaultLogLevel    = "warn"
)

var validate = validator.New()

type AppConfig struct {
	// APIKey may still be empty here; the caller prompts for it.
	APIKey string
	// Location is validated by weather.Location.Validate, not here.
	Location weather.Location `validate:"-"`

	BaseURL     string
	HTTPTimeout time.Duration `validate:"min=1s"`

	// Watch re-runs the report on this interval (0 = run once).
	Watch time.Duration `validate:"omitempty,min=1m"`

	NoColor    bool
	NoProgress bool
	LogLevel   slog.Level
}

// Flags holds the raw command-line values.
type Flags struct {
	APIKey     string
	City       string
	Lat        OptionalFloat
	Lon        OptionalFloat
	Watch      time.Duration
	NoColor    bool
	NoProgress bool
	Verbose    bool
}

// OptionalFloat is a flag.Value that remembers whether it was set.
type OptionalFloat struct {
	Value *float64
}

func (o *OptionalFloat) String() string {
	if o == nil || o.Value == nil {
		return ""
	}
	return strconv.FormatFloat(*o.Value, 'f', -1, 64)
}

func (o *OptionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	o.Value = &v
	return nil
}

// ParseFlags parses args (without the program name). Usage and parse errors
// are written to output.
func ParseFlags(name string, args []string, output io.Writer) (Flags, error) {
	var f Flags

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.APIKey, "api-key", "", "API key for OpenWeatherMap (default $"+APIKeyEnv+", prompted if unset)")
	fs.StringVar(&f.City, "city", "", "City name (e.g., London)")
	fs.Var(&f.Lat, "lat", "Latitude for your location")
	fs.Var(&f.Lon, "lon", "Longitude for your location")
	fs.DurationVar(&f.Watch, "watch", 0, "Refresh the report on this interval (e.g., 10m); minimum 1m")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&f.NoProgress, "no-progress", false, "Disable the progress marks after the report")
	fs.BoolVar(&f.Verbose, "v", false, "Enable debug logging on stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Display current weather information.\n\nUsage:\n  %s [flags]\n\nFlags:\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return Flags{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return f, nil
}

// Load reads a .env file if present, then merges flags over the environment.
func Load(f Flags) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Debug("could not load .env file", "err", err)
	}
	return fromEnv(f, os.Getenv)
}

func fromEnv(f Flags, getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{
		APIKey: strings.TrimSpace(f.APIKey),
		Location: weather.Location{
			City: f.City,
			Lat:  f.Lat.Value,
			Lon:  f.Lon.Value,
		},
		BaseURL:    strings.TrimSpace(getenv("WEATHER_API_URL")),
		Watch:      f.Watch,
		NoColor:    f.NoColor || getenv("NO_COLOR") != "",
		NoProgress: f.NoProgress,
	}

	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(getenv(APIKeyEnv))
	}

	timeout, err := time.ParseDuration(getenvDefault(getenv, "WEATHER_HTTP_TIMEOUT", defaultHTTPTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	level, err := parseLogLevel(getenvDefault(getenv, "LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return nil, err
	}
	if f.Verbose {
		level = slog.LevelDebug
	}
	cfg.LogLevel = level

	if err := validate.Struct(cfg); err != nil {
		return nil, describeValidation(err)
	}
	return cfg, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "HTTPTimeout":
		return fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT %v: must be at least %s", fe.Value(), fe.Param())
	case "Watch":
		return fmt.Errorf("invalid -watch %v: must be at least %s", fe.Value(), fe.Param())
	}
	return err
}

func getenvDefault(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
