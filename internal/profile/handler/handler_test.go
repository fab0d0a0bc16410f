package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	chartcache "jyotish/internal/chart/cache"
	chartservice "jyotish/internal/chart/service"
	"jyotish/internal/platform/metrics"
	"jyotish/internal/platform/middleware"
	profileservice "jyotish/internal/profile/service"
	"jyotish/internal/profile/store"
)

type HandlerSuite struct {
	suite.Suite
	router chi.Router
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	charts := chartservice.New(logger, chartcache.NewInMemory(), time.Minute)
	profiles := profileservice.New(logger, store.NewInMemory(), charts, metrics.NewForTest())

	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestTime)
	New(logger, profiles).Register(s.router)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequestWithContext(context.Background(), method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func validBirth() map[string]any {
	return map[string]any{
		"name":        "Asha",
		"dateOfBirth": "1990-05-15",
		"timeOfBirth": "14:30",
		"city":        "Chennai",
		"state":       "Tamil Nadu",
		"country":     "India",
		"latitude":    13.0827,
		"longitude":   80.2707,
		"timezone":    "Asia/Kolkata",
	}
}

func (s *HandlerSuite) createProfile() string {
	rec := s.do(http.MethodPost, "/profiles", validBirth())
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.ID)
	return resp.ID
}

func (s *HandlerSuite) TestCreate() {
	s.Run("creates a profile", func() {
		rec := s.do(http.MethodPost, "/profiles", validBirth())
		s.Require().Equal(http.StatusCreated, rec.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		_, err := uuid.Parse(resp["id"].(string))
		s.Require().NoError(err)

		birth := resp["birthDetails"].(map[string]any)
		s.Equal("Asha", birth["name"])

		createdAt, err := time.Parse(time.RFC3339, resp["createdAt"].(string))
		s.Require().NoError(err)
		s.WithinDuration(time.Now(), createdAt, time.Minute)
	})

	s.Run("rejects malformed JSON", func() {
		req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects invalid birth details", func() {
		body := validBirth()
		body["timezone"] = "Not/AZone"
		rec := s.do(http.MethodPost, "/profiles", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects overlong name", func() {
		body := validBirth()
		body["name"] = string(bytes.Repeat([]byte("x"), 129))
		rec := s.do(http.MethodPost, "/profiles", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestGetAndDelete() {
	id := s.createProfile()

	s.Run("fetches by ID", func() {
		rec := s.do(http.MethodGet, "/profiles/"+id, nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(id, resp["id"])
	})

	s.Run("rejects non-UUID path", func() {
		rec := s.do(http.MethodGet, "/profiles/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("404s on unknown ID", func() {
		rec := s.do(http.MethodGet, "/profiles/"+uuid.NewString(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("deletes and stays deleted", func() {
		rec := s.do(http.MethodDelete, "/profiles/"+id, nil)
		s.Require().Equal(http.StatusNoContent, rec.Code)

		rec = s.do(http.MethodGet, "/profiles/"+id, nil)
		s.Equal(http.StatusNotFound, rec.Code)

		rec = s.do(http.MethodDelete, "/profiles/"+id, nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerSuite) TestList() {
	for i := 0; i < 3; i++ {
		s.createProfile()
	}

	rec := s.do(http.MethodGet, "/profiles?limit=2", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp struct {
		Profiles []json.RawMessage `json:"profiles"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Profiles, 2)

	rec = s.do(http.MethodGet, "/profiles?limit=oops", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestProfileChart() {
	id := s.createProfile()

	rec := s.do(http.MethodGet, fmt.Sprintf("/profiles/%s/chart", id), nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, key := range []string{"birthDetails", "natalChart", "natalPlanets", "currentDasha", "currentPanchang"} {
		s.Contains(resp, key)
	}

	birth := resp["birthDetails"].(map[string]any)
	s.Equal("Asha", birth["name"])

	rec = s.do(http.MethodGet, fmt.Sprintf("/profiles/%s/chart", uuid.NewString()), nil)
	s.Equal(http.StatusNotFound, rec.Code)
}
