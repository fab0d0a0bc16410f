package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"jyotish/internal/chart/models"
	"jyotish/internal/platform/metrics"
	dErrors "jyotish/pkg/domain-errors"
	"jyotish/pkg/platform/httputil"
	"jyotish/pkg/requestcontext"
)

// Service defines the chart operations the handler needs.
type Service interface {
	Compute(ctx context.Context, birth models.BirthDetails) (*models.Chart, error)
	Positions(ctx context.Context) ([]models.GrahaPosition, error)
	Panchang(ctx context.Context, lat, lon float64, timezone string) (*models.Panchang, error)
}

// Handler exposes the chart endpoints.
type Handler struct {
	logger  *slog.Logger
	charts  Service
	metrics *metrics.Metrics
}

// New creates a chart Handler.
func New(charts Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		charts:  charts,
		metrics: m,
	}
}

// Register mounts the chart routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/full-vedic-chart", h.handleFullChart)
	r.Get("/positions", h.handlePositions)
	r.Get("/panchang", h.handlePanchang)
}

// handleFullChart serves the original full-chart operation with its legacy
// wire shape.
func (h *Handler) handleFullChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var birth models.BirthDetails
	if err := json.NewDecoder(r.Body).Decode(&birth); err != nil {
		h.logger.WarnContext(ctx, "invalid chart request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	chart, err := h.charts.Compute(ctx, birth)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.WarnContext(ctx, "invalid chart request",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		h.metrics.ChartFailures.Inc()
		h.logger.ErrorContext(ctx, "chart computation failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to compute chart"))
		return
	}

	h.metrics.ChartsComputed.Inc()
	httputil.WriteJSON(w, http.StatusOK, ToWire(chart))
}

func (h *Handler) handlePositions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	positions, err := h.charts.Positions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "positions failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to compute positions"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, positionsResponse{
		AsOf:      requestcontext.Now(ctx).UTC(),
		Positions: placementsToWire(positions),
	})
}

func (h *Handler) handlePanchang(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lat, err := queryFloat(r, "lat")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	tz := r.URL.Query().Get("tz")
	if tz == "" {
		tz = "UTC"
	}

	p, err := h.charts.Panchang(ctx, lat, lon, tz)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "panchang failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to compute panchang"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, panchangToWire(*p))
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, dErrors.New(dErrors.CodeBadRequest, name+" query parameter is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, dErrors.New(dErrors.CodeBadRequest, name+" must be a finite number")
	}
	return v, nil
}
