package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/weather"
)

// DefaultOpenWeatherURL is the OpenWeatherMap "current weather" endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

var schema = newSchemaValidator()

// Option configures an OpenWeatherProvider.
type Option func(*OpenWeatherProvider)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(p *OpenWeatherProvider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *OpenWeatherProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	// Trips after three consecutive provider failures; only repeated runs in watch mode can get there.
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: countsAsSuccess,
	})

	p := &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherURL,
		client:  client,
		circuit: cb,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Current fetches the current weather for an already validated location.
func (p *OpenWeatherProvider) Current(ctx context.Context, loc weather.Location) (weather.Report, error) {
	if p.apiKey == "" {
		return weather.Report{}, weather.ErrMissingCredential
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u, err := url.Parse(p.baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse base url %s: %w", p.baseURL, err)
		}

		values := u.Query()
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		if loc.City != "" {
			values.Set("q", loc.City)
		} else {
			values.Set("lat", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
			values.Set("lon", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
		}
		u.RawQuery = values.Encode()

		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	}

	start := time.Now()
	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.Report{}, fmt.Errorf("%w: %w", weather.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	p.logger.Debug("openweather responded", "status", resp.StatusCode, "elapsed", time.Since(start))

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Report{}, fmt.Errorf("%w: decode body: %v", weather.ErrMalformedResponse, err)
	}

	return extractReport(payload)
}

// currentResponse is the subset of the current-weather document we read.
// Pointers distinguish an absent field from a zero value.
type currentResponse struct {
	Name    *string            `json:"name" validate:"required"`
	Weather []currentCondition `json:"weather" validate:"required,min=1,dive"`
	Main    *struct {
		Temp     *float64 `json:"temp" validate:"required"`
		Humidity *float64 `json:"humidity" validate:"required"`
	} `json:"main" validate:"required"`
	Wind *struct {
		Speed *float64 `json:"speed" validate:"required"`
	} `json:"wind" validate:"required"`
}

type currentCondition struct {
	Main        *string `json:"main" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// extractReport validates the presence of every field the report needs.
func extractReport(payload currentResponse) (weather.Report, error) {
	if err := schema.Struct(payload); err != nil {
		return weather.Report{}, fmt.Errorf("%w: %s", weather.ErrMalformedResponse, describeSchemaError(err))
	}

	cond := payload.Weather[0]
	return weather.Report{
		Place:        *payload.Name,
		Category:     weather.Condition(strings.ToLower(*cond.Main)),
		Description:  *cond.Description,
		TemperatureC: *payload.Main.Temp,
		HumidityPct:  int(math.Round(*payload.Main.Humidity)),
		WindSpeedMS:  *payload.Wind.Speed,
	}, nil
}

func newSchemaValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describeSchemaError lists the offending fields using their JSON paths.
func describeSchemaError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		if fe.Tag() == "min" {
			fields = append(fields, ns+" is empty")
			continue
		}
		fields = append(fields, ns+" is missing")
	}
	return strings.Join(fields, ", ")
}
