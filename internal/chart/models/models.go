package models

import (
	"fmt"
	"time"

	dErrors "jyotish/pkg/domain-errors"
)

// BirthDetails is the input for a chart computation: a civil birth moment
// and the geographic place it happened.
//
// Invariants:
//   - DateOfBirth parses as "2006-01-02" and TimeOfBirth as "15:04"
//   - Timezone is a resolvable IANA zone name
//   - Latitude in [-90, 90], Longitude in [-180, 180]
type BirthDetails struct {
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dateOfBirth"`
	TimeOfBirth string  `json:"timeOfBirth"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Validate checks field-level invariants without touching the ephemeris.
func (b BirthDetails) Validate() error {
	if b.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if _, err := time.Parse(dateLayout, b.DateOfBirth); err != nil {
		return dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("dateOfBirth must be YYYY-MM-DD, got %q", b.DateOfBirth))
	}
	if _, err := time.Parse(timeLayout, b.TimeOfBirth); err != nil {
		return dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("timeOfBirth must be HH:MM, got %q", b.TimeOfBirth))
	}
	// Negated form so NaN fails the check too.
	if !(b.Latitude >= -90 && b.Latitude <= 90) {
		return dErrors.New(dErrors.CodeBadRequest, "latitude out of range")
	}
	if !(b.Longitude >= -180 && b.Longitude <= 180) {
		return dErrors.New(dErrors.CodeBadRequest, "longitude out of range")
	}
	if _, err := time.LoadLocation(b.Timezone); err != nil {
		return dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("unknown timezone %q", b.Timezone))
	}
	return nil
}

// Location resolves the IANA timezone. Validate first.
func (b BirthDetails) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeBadRequest,
			fmt.Sprintf("unknown timezone %q", b.Timezone), err)
	}
	return loc, nil
}

// BirthTime returns the zoned civil birth instant.
func (b BirthDetails) BirthTime() (time.Time, error) {
	loc, err := b.Location()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout,
		b.DateOfBirth+" "+b.TimeOfBirth, loc)
	if err != nil {
		return time.Time{}, dErrors.Wrap(dErrors.CodeBadRequest,
			"invalid birth date or time", err)
	}
	return t, nil
}

// GrahaPosition is one graha (or the ascendant) placed in the sidereal
// zodiac.
type GrahaPosition struct {
	Graha      string  `json:"graha"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`    // within the sign
	Longitude  float64 `json:"longitude"` // full sidereal longitude
	Nakshatra  string  `json:"nakshatra"`
	Pada       int     `json:"pada"`
	Retrograde bool    `json:"retrograde"`
}

// DashaPeriod is one running Vimshottari period.
type DashaPeriod struct {
	Lord  string    `json:"lord"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Panchang is the five-limb almanac for one instant and place.
type Panchang struct {
	MoonSign  string    `json:"moonSign"`
	Tithi     Tithi     `json:"tithi"`
	Yoga      string    `json:"yoga"`
	Karana    string    `json:"karana"`
	Nakshatra string    `json:"nakshatra"`
	Sunrise   time.Time `json:"sunrise"`
	Sunset    time.Time `json:"sunset"`
	// PolarDay is set when the sun never crosses the horizon at the
	// requested latitude that day; Sunrise/Sunset are zero then.
	PolarDay bool `json:"polarDay,omitempty"`
}

// Chart is a complete natal chart plus the time-of-request limbs.
type Chart struct {
	Birth        BirthDetails    `json:"birth"`
	Ascendant    GrahaPosition   `json:"ascendant"`
	NatalPlanets []GrahaPosition `json:"natalPlanets"`
	Current      []GrahaPosition `json:"current"`
	BirthTithi   Tithi           `json:"birthTithi"`
	BirthYoga    string          `json:"birthYoga"`
	Mahadasha    DashaPeriod     `json:"mahadasha"`
	Bhukti       DashaPeriod     `json:"bhukti"`
	Panchang     Panchang        `json:"panchang"`
}
