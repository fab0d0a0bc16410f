// Package profile stores birth details so charts can be recomputed on
// demand without resubmitting them.
package profile

import (
	"log/slog"

	"jyotish/internal/platform/metrics"
	"jyotish/internal/profile/handler"
	"jyotish/internal/profile/service"
)

// Service orchestrates profile persistence and chart recomputation.
type Service = service.Service

// Handler wires HTTP endpoints to the profile service.
type Handler = handler.Handler

func NewService(logger *slog.Logger, store service.Store, charts service.ChartComputer, m *metrics.Metrics) *Service {
	return service.New(logger, store, charts, m)
}

func NewHandler(logger *slog.Logger, svc *Service) *Handler {
	return handler.New(logger, svc)
}
