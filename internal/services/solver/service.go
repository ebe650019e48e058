// Package solver finds solution points with usable street imagery.
package solver

import (
	"context"
	"log/slog"

	"github.com/mpetrie/geohunt/internal/geo"
	"github.com/mpetrie/geohunt/internal/model"
	"github.com/mpetrie/geohunt/internal/streetview"
)

// maxAttempts bounds the geographic search: sampled points can land in
// open water or unmapped areas, so the resolver retries with fresh
// samples, but never unboundedly.
const maxAttempts = 5

// Service resolves a playable solution point within a radius
type Service struct {
	sampler  geo.Sampler
	provider streetview.Provider
	logger   *slog.Logger
}

// New creates a new solver service
func New(sampler geo.Sampler, provider streetview.Provider, logger *slog.Logger) *Service {
	return &Service{
		sampler:  sampler,
		provider: provider,
		logger:   logger,
	}
}

// Resolve samples candidate points within radiusMeters of center until one
// has usable imagery, up to the attempt budget. The returned point is the
// provider's snapped panorama location for the winning candidate. Fails
// with model.ErrSolutionUnavailable once the budget is exhausted; a
// provider transport failure aborts immediately (each validity check is
// made at most once per candidate).
func (s *Service) Resolve(ctx context.Context, center model.Point, radiusMeters float64) (model.Point, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate := s.sampler.Sample(center, radiusMeters)

		snapped, err := s.provider.CheckImagery(ctx, candidate)
		if err != nil {
			return model.Point{}, err
		}
		if snapped != nil {
			s.logger.Debug("solution point resolved",
				slog.Int("attempt", attempt),
				slog.Float64("latitude", snapped.Latitude),
				slog.Float64("longitude", snapped.Longitude),
			)
			return *snapped, nil
		}
	}

	s.logger.Info("no solution point with imagery found",
		slog.Int("attempts", maxAttempts),
		slog.Float64("radius_meters", radiusMeters),
	)
	return model.Point{}, model.ErrSolutionUnavailable
}
