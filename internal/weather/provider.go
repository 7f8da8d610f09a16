package weather

import (
	"context"
)

// Provider abstracts the current-weather data source.
// Implementations receive an already validated Location.
type Provider interface {
	Name() string
	Current(ctx context.Context, loc Location) (Report, error)
}
