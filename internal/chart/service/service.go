// Package service computes sidereal charts. It is the only package that
// talks to the ephemeris; handlers stay transport-only.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"jyotish/internal/chart/cache"
	"jyotish/internal/chart/models"
	"jyotish/internal/ephemeris"
	dErrors "jyotish/pkg/domain-errors"
	"jyotish/pkg/platform/sentinel"
	"jyotish/pkg/requestcontext"
)

const positionsCacheKey = "positions:current"

// Service computes charts, current positions and panchang.
type Service struct {
	logger   *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
	tracer   trace.Tracer
}

// New constructs the chart service. cache may not be nil; pass the in-memory
// implementation when Redis is not configured.
func New(logger *slog.Logger, c cache.Cache, cacheTTL time.Duration) *Service {
	return &Service{
		logger:   logger,
		cache:    c,
		cacheTTL: cacheTTL,
		tracer:   otel.Tracer("jyotish/chart"),
	}
}

// Compute builds the complete chart for a birth: natal placements, running
// Vimshottari periods and the panchang at request time for the birth place.
func (s *Service) Compute(ctx context.Context, birth models.BirthDetails) (*models.Chart, error) {
	ctx, span := s.tracer.Start(ctx, "chart.Compute",
		trace.WithAttributes(attribute.String("birth.timezone", birth.Timezone)))
	defer span.End()

	if err := birth.Validate(); err != nil {
		return nil, err
	}

	birthTime, err := birth.BirthTime()
	if err != nil {
		return nil, err
	}
	loc := birthTime.Location()
	jdBirth := ephemeris.JulianDay(birthTime)

	natal := natalPositions(jdBirth)
	ascendant := ascendantPosition(jdBirth, birth.Latitude, birth.Longitude)

	moonLon := natal[grahaIndex(ephemeris.Moon)].Longitude
	sunLon := natal[grahaIndex(ephemeris.Sun)].Longitude

	now := requestcontext.Now(ctx)
	maha, bhukti := vimshottari(moonLon, jdBirth, loc, now)

	current, err := s.Positions(ctx)
	if err != nil {
		return nil, err
	}

	panchang := s.panchangAt(now.In(loc), birth.Latitude, birth.Longitude)

	chart := &models.Chart{
		Birth:        birth,
		Ascendant:    ascendant,
		NatalPlanets: natal,
		Current:      current,
		BirthTithi:   models.TithiOf(moonLon, sunLon),
		BirthYoga:    models.YogaOf(moonLon, sunLon),
		Mahadasha:    maha,
		Bhukti:       bhukti,
		Panchang:     panchang,
	}

	s.logger.InfoContext(ctx, "chart computed",
		"request_id", requestcontext.RequestID(ctx),
		"timezone", birth.Timezone,
		"mahadasha", maha.Lord,
		"bhukti", bhukti.Lord,
	)
	return chart, nil
}

// Positions returns the current sidereal positions of the nine grahas,
// served from cache inside the TTL so bursts do not recompute the series.
func (s *Service) Positions(ctx context.Context) ([]models.GrahaPosition, error) {
	ctx, span := s.tracer.Start(ctx, "chart.Positions")
	defer span.End()

	if cached, err := s.cache.Get(ctx, positionsCacheKey); err == nil {
		var positions []models.GrahaPosition
		if err := json.Unmarshal(cached, &positions); err == nil {
			return positions, nil
		}
		// Corrupt entry: fall through and recompute.
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "position cache read failed", "error", err)
	}

	jd := ephemeris.JulianDay(requestcontext.Now(ctx))
	positions := grahaPositions(jd, false)

	if payload, err := json.Marshal(positions); err == nil {
		if err := s.cache.Set(ctx, positionsCacheKey, payload, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "position cache write failed", "error", err)
		}
	}
	return positions, nil
}

// Panchang computes today's five limbs for an arbitrary place.
func (s *Service) Panchang(ctx context.Context, lat, lon float64, timezone string) (*models.Panchang, error) {
	ctx, span := s.tracer.Start(ctx, "chart.Panchang")
	defer span.End()

	// Negated form so NaN fails the check too.
	if !(lat >= -90 && lat <= 90) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "latitude out of range")
	}
	if !(lon >= -180 && lon <= 180) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "longitude out of range")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeBadRequest,
			fmt.Sprintf("unknown timezone %q", timezone), err)
	}

	p := s.panchangAt(requestcontext.Now(ctx).In(loc), lat, lon)
	return &p, nil
}

// panchangAt computes the limbs for a zoned instant and place.
func (s *Service) panchangAt(local time.Time, lat, lon float64) models.Panchang {
	jd := ephemeris.JulianDay(local)
	moon := ephemeris.SiderealLongitude(jd, ephemeris.Moon)
	sun := ephemeris.SiderealLongitude(jd, ephemeris.Sun)

	moonSign, _ := models.SignOf(moon)
	nakshatra, _ := models.NakshatraOf(moon)

	p := models.Panchang{
		MoonSign:  moonSign,
		Tithi:     models.TithiOf(moon, sun),
		Yoga:      models.YogaOf(moon, sun),
		Karana:    models.KaranaOf(moon, sun),
		Nakshatra: nakshatra,
	}

	rise, set, ok := ephemeris.SunTimes(local, lat, lon)
	if !ok {
		p.PolarDay = true
		return p
	}
	p.Sunrise = rise
	p.Sunset = set
	return p
}

// natalPositions computes the nine grahas with retrograde flags.
func natalPositions(jd float64) []models.GrahaPosition {
	return grahaPositions(jd, true)
}

func grahaPositions(jd float64, withSpeed bool) []models.GrahaPosition {
	out := make([]models.GrahaPosition, 0, len(ephemeris.Grahas))
	for _, g := range ephemeris.Grahas {
		lon := ephemeris.SiderealLongitude(jd, g)
		pos := placement(string(g), lon)
		if withSpeed && !g.IsNode() {
			pos.Retrograde = ephemeris.LongitudeSpeed(jd, g) < 0
		}
		out = append(out, pos)
	}
	return out
}

func ascendantPosition(jd, lat, lon float64) models.GrahaPosition {
	return placement("Ascendant", ephemeris.SiderealAscendant(jd, lat, lon))
}

func placement(name string, lon float64) models.GrahaPosition {
	sign, degree := models.SignOf(lon)
	nakshatra, pada := models.NakshatraOf(lon)
	return models.GrahaPosition{
		Graha:     name,
		Sign:      sign,
		Degree:    degree,
		Longitude: lon,
		Nakshatra: nakshatra,
		Pada:      pada,
	}
}

func grahaIndex(g ephemeris.Graha) int {
	for i, other := range ephemeris.Grahas {
		if other == g {
			return i
		}
	}
	return 0
}
