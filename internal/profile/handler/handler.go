package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	charthandler "jyotish/internal/chart/handler"
	chartmodels "jyotish/internal/chart/models"
	"jyotish/internal/profile/models"
	dErrors "jyotish/pkg/domain-errors"
	"jyotish/pkg/platform/httputil"
)

// Service is the profile surface the handler depends on.
type Service interface {
	Create(ctx context.Context, birth chartmodels.BirthDetails) (*models.Profile, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context, limit int) ([]*models.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Chart(ctx context.Context, id uuid.UUID) (*chartmodels.Chart, error)
}

type Handler struct {
	logger   *slog.Logger
	profiles Service
}

func New(logger *slog.Logger, profiles Service) *Handler {
	return &Handler{logger: logger, profiles: profiles}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{profileID}", h.get)
		r.Delete("/{profileID}", h.delete)
		r.Get("/{profileID}/chart", h.chart)
	})
}

type profileResponse struct {
	ID           string                   `json:"id"`
	BirthDetails chartmodels.BirthDetails `json:"birthDetails"`
	CreatedAt    string                   `json:"createdAt"`
	UpdatedAt    string                   `json:"updatedAt"`
}

func toResponse(p *models.Profile) profileResponse {
	return profileResponse{
		ID:           p.ID.String(),
		BirthDetails: p.Birth,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var birth chartmodels.BirthDetails
	if err := json.NewDecoder(r.Body).Decode(&birth); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	p, err := h.profiles.Create(r.Context(), birth)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	ps, err := h.profiles.List(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]profileResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toResponse(p))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"profiles": out})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.profiles.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// chart recomputes the stored profile's chart, in the same wire shape as
// POST /full-vedic-chart.
func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	c, err := h.profiles.Chart(r.Context(), id)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(r.Context(), "profile chart failed",
				slog.String("profile_id", id.String()), slog.Any("error", err))
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, charthandler.ToWire(c))
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "profileID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "profile id must be a UUID")
	}
	return id, nil
}
