package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
)

var (
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("provider unavailable after repeated failures; pausing requests")
	errNoHTTPClient = errors.New("http client not configured")
)

// maxErrorBody caps how much of a failed response body is read for its message.
const maxErrorBody = 4 << 10

// doRequest executes the HTTP request exactly once through the circuit breaker.
// Non-2xx responses are turned into errors carrying the provider's message, if any.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			var uerr *url.Error
			if errors.As(execErr, &uerr) {
				uerr.URL = redactURL(uerr.URL)
			}
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			defer resp.Body.Close()
			return nil, newStatusError(resp)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errCircuitOpen
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// statusError is a non-2xx response. OpenWeatherMap reports failures as
// {"cod": ..., "message": "..."}.
type statusError struct {
	Code    int
	Status  string
	Message string
}

func (e *statusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", errUnexpected, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", errUnexpected, e.Status)
}

func (e *statusError) Unwrap() error { return errUnexpected }

func newStatusError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	se := &statusError{Code: resp.StatusCode, Status: resp.Status}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &body); err == nil {
		se.Message = strings.TrimSpace(body.Message)
	}
	return se
}

// countsAsSuccess tells the breaker which errors are the caller's own mistake
// (unknown city, bad key). Only transport errors, 5xx and 429 trip it.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Code < 500 && se.Code != http.StatusTooManyRequests
	}
	return false
}

// redactURL hides credential query parameters in URLs that end up in error text.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("appid") {
		q.Set("appid", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
