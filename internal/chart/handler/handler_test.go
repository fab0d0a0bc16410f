package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"jyotish/internal/chart/cache"
	"jyotish/internal/chart/models"
	"jyotish/internal/chart/service"
	"jyotish/internal/platform/metrics"
	"jyotish/internal/platform/middleware"
)

// HandlerSuite exercises the chart endpoints over a real service with an
// in-memory cache; no mocks.
type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(logger, cache.NewInMemory(), time.Minute)
	h := New(svc, logger, metrics.NewForTest())

	r := chi.NewRouter()
	r.Use(middleware.RequestTime)
	h.Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) postChart(body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/full-vedic-chart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func validChartRequest() map[string]any {
	return map[string]any{
		"name":        "Asha",
		"dateOfBirth": "1970-09-04",
		"timeOfBirth": "06:05",
		"city":        "Chennai",
		"state":       "Tamil Nadu",
		"country":     "India",
		"latitude":    13.0827,
		"longitude":   80.2707,
		"timezone":    "Asia/Kolkata",
	}
}

func (s *HandlerSuite) TestFullChart_InvalidJSON() {
	rec := s.postChart([]byte("not json"))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestFullChart_UnknownTimezone() {
	payload := validChartRequest()
	payload["timezone"] = "Pluto/Charon"
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	rec := s.postChart(body)
	s.Equal(http.StatusBadRequest, rec.Code)

	var resp map[string]string
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("bad_request", resp["error"])
	s.Contains(resp["error_description"], "timezone")
}

func (s *HandlerSuite) TestFullChart_LegacyWireShape() {
	body, err := json.Marshal(validChartRequest())
	s.Require().NoError(err)

	rec := s.postChart(body)
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))

	// Top-level keys of the original API, spellings included.
	for _, key := range []string{
		"birthDetails", "natalChart", "houseCalculationMethod",
		"natalPlanets", "currentPlanetaryPositions", "currentDasha",
		"currentBukthi", "transits", "dailyDetails", "currentPanchang",
	} {
		s.Contains(resp, key)
	}

	var natal []map[string]any
	s.Require().NoError(json.Unmarshal(resp["natalPlanets"], &natal))
	s.Require().Len(natal, 9)
	s.Equal("Sun", natal[0]["planet"])
	s.Equal("Ketu", natal[8]["planet"])

	// Numbers travel as strings on this endpoint.
	_, ok := natal[0]["degree"].(string)
	s.True(ok, "degree must be a string")
	_, ok = natal[0]["pada"].(string)
	s.True(ok, "pada must be a string")

	var current []map[string]any
	s.Require().NoError(json.Unmarshal(resp["currentPlanetaryPositions"], &current))
	s.Require().Len(current, 9)
	s.Contains(current[0], "currentPlanetaryplanet")
	s.Contains(current[0], "currentPlanetarynakshatra")

	var transits []any
	s.Require().NoError(json.Unmarshal(resp["transits"], &transits))
	s.Empty(transits)

	var dasha map[string]string
	s.Require().NoError(json.Unmarshal(resp["currentDasha"], &dasha))
	s.NotEmpty(dasha["dasha"])
	// "2006-01-02 03:04 PM" layout.
	_, err = time.Parse("2006-01-02 03:04 PM", dasha["startDate"])
	s.NoError(err)
}

func (s *HandlerSuite) TestPositions() {
	req := httptest.NewRequest(http.MethodGet, "/positions", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)

	var resp struct {
		AsOf      time.Time `json:"asOf"`
		Positions []struct {
			Planet    string  `json:"planet"`
			Sign      string  `json:"sign"`
			Longitude float64 `json:"longitude"`
		} `json:"positions"`
	}
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Len(resp.Positions, 9)
	s.False(resp.AsOf.IsZero())
	for _, p := range resp.Positions {
		s.NotEmpty(p.Sign, p.Planet)
	}
}

func (s *HandlerSuite) TestPanchang_RequiresCoordinates() {
	req := httptest.NewRequest(http.MethodGet, "/panchang?lat=28.6", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestPanchang_RejectsNonFiniteCoordinates() {
	for _, query := range []string{
		"lat=NaN&lon=77.2",
		"lat=28.6&lon=NaN",
		"lat=Inf&lon=77.2",
	} {
		req := httptest.NewRequest(http.MethodGet, "/panchang?"+query, nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusBadRequest, rec.Code, query)
	}
}

func (s *HandlerSuite) TestPanchang_OK() {
	req := httptest.NewRequest(http.MethodGet,
		"/panchang?lat=28.6139&lon=77.2090&tz=Asia/Kolkata", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)

	var resp map[string]any
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.NotEmpty(resp["tithi"])
	s.NotEmpty(resp["nakshatra"])
	s.NotEmpty(resp["sunrise"])
}

// Decoding garbage into BirthDetails must not panic the handler even without
// the recovery middleware.
func TestFullChartTypeMismatch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(logger, cache.NewInMemory(), time.Minute)
	h := New(svc, logger, metrics.NewForTest())

	r := chi.NewRouter()
	h.Register(r)

	body, err := json.Marshal(map[string]any{"latitude": "not-a-number"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/full-vedic-chart", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// Keep the wire structs honest: a chart that the service produced must map
// without dropping grahas.
func TestChartToWire(t *testing.T) {
	c := &models.Chart{
		Birth: models.BirthDetails{Name: "A", Timezone: "UTC"},
		NatalPlanets: []models.GrahaPosition{
			{Graha: "Sun", Sign: "Leo", Degree: 1.234, Longitude: 121.234, Nakshatra: "Magha", Pada: 1},
			{Graha: "Moon", Sign: "Cancer", Degree: 15.5, Longitude: 105.5, Nakshatra: "Pushya", Pada: 4},
		},
		Current: []models.GrahaPosition{
			{Graha: "Sun", Sign: "Leo", Degree: 1.2, Longitude: 121.2, Nakshatra: "Magha", Pada: 1},
		},
		BirthTithi: models.Tithi{Paksha: "Shukla", Name: "Tritiya"},
		BirthYoga:  "Priti",
	}

	wire := ToWire(c)
	require.Len(t, wire.NatalPlanets, 2)
	require.Equal(t, "1.23", wire.NatalPlanets[0].Degree)
	require.Equal(t, "121.23", wire.NatalPlanets[0].Longitude)
	require.Equal(t, "4", wire.NatalPlanets[1].Pada)
	require.Equal(t, "Shukla Tritiya", wire.NatalChart.Tithi.Name)
	require.Equal(t, "Sun", wire.NatalChart.SunSign.Planet)
	require.Equal(t, "Moon", wire.NatalChart.MoonSign.Planet)
	require.NotNil(t, wire.Transits)
	require.Empty(t, wire.DailyDetails.Sunrise)
}
