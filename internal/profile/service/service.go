// Package service orchestrates stored birth profiles and chart
// recomputation for them.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	chartmodels "jyotish/internal/chart/models"
	"jyotish/internal/platform/metrics"
	"jyotish/internal/profile/models"
	dErrors "jyotish/pkg/domain-errors"
	"jyotish/pkg/platform/sentinel"
	"jyotish/pkg/requestcontext"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Store persists profiles. Implementations return sentinel errors for
// missing and duplicate rows.
type Store interface {
	Create(ctx context.Context, p *models.Profile) error
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context, limit int) ([]*models.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChartComputer recomputes a chart from stored birth details.
type ChartComputer interface {
	Compute(ctx context.Context, birth chartmodels.BirthDetails) (*chartmodels.Chart, error)
}

type Service struct {
	logger  *slog.Logger
	store   Store
	charts  ChartComputer
	metrics *metrics.Metrics
}

func New(logger *slog.Logger, store Store, charts ChartComputer, m *metrics.Metrics) *Service {
	return &Service{logger: logger, store: store, charts: charts, metrics: m}
}

func (s *Service) Create(ctx context.Context, birth chartmodels.BirthDetails) (*models.Profile, error) {
	p, err := models.NewProfile(uuid.New(), birth, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "profile already exists")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to create profile", err)
	}
	if s.metrics != nil {
		s.metrics.ProfilesCreated.Inc()
	}
	s.logger.InfoContext(ctx, "profile created",
		slog.String("profile_id", p.ID.String()),
		slog.String("request_id", requestcontext.RequestID(ctx)))
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return p, nil
}

// List returns the most recently created profiles. A non-positive limit
// falls back to the default; limits above the cap are clamped.
func (s *Service) List(ctx context.Context, limit int) ([]*models.Profile, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	out, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to list profiles", err)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return wrapStoreErr(err)
	}
	s.logger.InfoContext(ctx, "profile deleted", slog.String("profile_id", id.String()))
	return nil
}

// Chart recomputes the full chart for a stored profile at the request time.
func (s *Service) Chart(ctx context.Context, id uuid.UUID) (*chartmodels.Chart, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return s.charts.Compute(ctx, p.Birth)
}

func wrapStoreErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "profile not found")
	}
	return dErrors.Wrap(dErrors.CodeInternal, "profile store failure", err)
}
