package weather

import (
	"context"
	"fmt"
	"log/slog"
)

// Service runs the validate -> fetch part of the pipeline against a single provider.
type Service struct {
	provider Provider
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(provider Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// Current validates loc and fetches the current weather for it.
// No request is made when validation fails.
func (s *Service) Current(ctx context.Context, loc Location) (Report, error) {
	if s.provider == nil {
		return Report{}, fmt.Errorf("%w: no weather provider configured", ErrFetchFailed)
	}

	if loc.Ambiguous() {
		s.logger.Debug("city and coordinates both given; using city", "city", loc.City)
	}

	resolved, err := loc.Validate()
	if err != nil {
		return Report{}, err
	}

	s.logger.Debug("fetching current weather", "provider", s.provider.Name(), "location", resolved.Key())

	report, err := s.provider.Current(ctx, resolved)
	if err != nil {
		s.logger.Debug("provider fetch failed", "provider", s.provider.Name(), "location", resolved.Key(), "err", err)
		return Report{}, err
	}
	return report, nil
}
