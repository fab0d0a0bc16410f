package handler

import (
	"strconv"
	"time"

	"jyotish/internal/chart/models"
)

// The full-chart response reproduces the wire shape of the original service,
// including its field spellings ("currentBukthi", the currentPlanetary* key
// family) and its string-rendered numbers, so existing clients keep working.

const (
	periodDateLayout = "2006-01-02 03:04 PM"
	clockLayout      = "03:04 PM"
)

// ChartResponse is the legacy full-chart wire layout.
type ChartResponse struct {
	BirthDetails              birthDetailsJSON  `json:"birthDetails"`
	NatalChart                natalChartJSON    `json:"natalChart"`
	HouseCalculationMethod    string            `json:"houseCalculationMethod"`
	NatalPlanets              []planetJSON      `json:"natalPlanets"`
	CurrentPlanetaryPositions []currentPosJSON  `json:"currentPlanetaryPositions"`
	CurrentDasha              dashaJSON         `json:"currentDasha"`
	CurrentBukthi             bukthiJSON        `json:"currentBukthi"`
	Transits                  []any             `json:"transits"`
	DailyDetails              dailyDetailsJSON  `json:"dailyDetails"`
	CurrentPanchang           currentPanchaJSON `json:"currentPanchang"`
}

type birthDetailsJSON struct {
	Name         string    `json:"name"`
	DateOfBirth  string    `json:"dateOfBirth"`
	TimeOfBirth  string    `json:"timeOfBirth"`
	PlaceOfBirth placeJSON `json:"placeOfBirth"`
	UserLocation coordJSON `json:"user_location"`
}

type placeJSON struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

type coordJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

type natalChartJSON struct {
	Ascendant planetJSON `json:"ascendant"`
	SunSign   planetJSON `json:"sunSign"`
	MoonSign  planetJSON `json:"moonSign"`
	Tithi     nameJSON   `json:"tithi"`
	Yoga      nameJSON   `json:"yoga"`
}

type nameJSON struct {
	Name string `json:"name"`
}

type planetJSON struct {
	Planet    string `json:"planet"`
	Sign      string `json:"sign"`
	Degree    string `json:"degree"`
	Nakshatra string `json:"nakshatra"`
	Pada      string `json:"pada"`
	Longitude string `json:"longitude"`
	IsRetro   bool   `json:"isRetro"`
}

type currentPosJSON struct {
	Planet    string `json:"currentPlanetaryplanet"`
	Sign      string `json:"currentPlanetarysign"`
	Degree    string `json:"currentPlanetarydegree"`
	Nakshatra string `json:"currentPlanetarynakshatra"`
	Pada      string `json:"currentPlanetarypada"`
	Longitude string `json:"currentPlanetarylongitude"`
}

type dashaJSON struct {
	Dasha     string `json:"dasha"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type bukthiJSON struct {
	Bukthi    string `json:"bukthi"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type dailyDetailsJSON struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

type currentPanchaJSON struct {
	CurrentMoonSign  string            `json:"currentMoonSign"`
	CurrentTithi     tithiNameJSON     `json:"currentTithi"`
	CurrentKarana    karanaNameJSON    `json:"currentKarana"`
	CurrentYoga      yogaNameJSON      `json:"currentYoga"`
	CurrentNakshatra nakshatraNameJSON `json:"currentNakshatra"`
	CurrentSunRise   string            `json:"currentSunRise"`
	CurrentSunSet    string            `json:"currentSunSet"`
}

type tithiNameJSON struct {
	CurrentTithiName string `json:"currentTithiName"`
}

type karanaNameJSON struct {
	CurrentKaranaName string `json:"currentKaranaName"`
}

type yogaNameJSON struct {
	CurrentYogaName string `json:"currentYogaName"`
}

type nakshatraNameJSON struct {
	CurrentNakshatraName string `json:"currentNakshatraName"`
}

// positionsResponse is the shape of the standalone positions endpoint.
type positionsResponse struct {
	AsOf      time.Time     `json:"asOf"`
	Positions []posItemJSON `json:"positions"`
}

type posItemJSON struct {
	Planet    string  `json:"planet"`
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
	Nakshatra string  `json:"nakshatra"`
	Pada      int     `json:"pada"`
	Longitude float64 `json:"longitude"`
}

// panchangResponse is the shape of the standalone panchang endpoint.
type panchangResponse struct {
	MoonSign  string `json:"moonSign"`
	Tithi     string `json:"tithi"`
	Yoga      string `json:"yoga"`
	Karana    string `json:"karana"`
	Nakshatra string `json:"nakshatra"`
	Sunrise   string `json:"sunrise,omitempty"`
	Sunset    string `json:"sunset,omitempty"`
	PolarDay  bool   `json:"polarDay,omitempty"`
}

// ToWire maps a computed chart onto the legacy response layout. The profile
// handler reuses it so saved-profile charts match ad-hoc ones exactly.
func ToWire(c *models.Chart) ChartResponse {
	natal := make([]planetJSON, 0, len(c.NatalPlanets))
	var sun, moon planetJSON
	for _, p := range c.NatalPlanets {
		pj := planetToWire(p)
		natal = append(natal, pj)
		switch p.Graha {
		case "Sun":
			sun = pj
		case "Moon":
			moon = pj
		}
	}

	current := make([]currentPosJSON, 0, len(c.Current))
	for _, p := range c.Current {
		current = append(current, currentPosJSON{
			Planet:    p.Graha,
			Sign:      p.Sign,
			Degree:    formatDeg(p.Degree),
			Nakshatra: p.Nakshatra,
			Pada:      strconv.Itoa(p.Pada),
			Longitude: formatDeg(p.Longitude),
		})
	}

	return ChartResponse{
		BirthDetails: birthDetailsJSON{
			Name:        c.Birth.Name,
			DateOfBirth: c.Birth.DateOfBirth,
			TimeOfBirth: c.Birth.TimeOfBirth,
			PlaceOfBirth: placeJSON{
				City:      c.Birth.City,
				State:     c.Birth.State,
				Country:   c.Birth.Country,
				Latitude:  c.Birth.Latitude,
				Longitude: c.Birth.Longitude,
				Timezone:  c.Birth.Timezone,
			},
			UserLocation: coordJSON{
				Latitude:  c.Birth.Latitude,
				Longitude: c.Birth.Longitude,
				Timezone:  c.Birth.Timezone,
			},
		},
		NatalChart: natalChartJSON{
			Ascendant: planetToWire(c.Ascendant),
			SunSign:   sun,
			MoonSign:  moon,
			Tithi:     nameJSON{Name: c.BirthTithi.String()},
			Yoga:      nameJSON{Name: c.BirthYoga},
		},
		HouseCalculationMethod:    "Whole Sign Houses based on ascendant (Lagna)",
		NatalPlanets:              natal,
		CurrentPlanetaryPositions: current,
		CurrentDasha: dashaJSON{
			Dasha:     c.Mahadasha.Lord,
			StartDate: c.Mahadasha.Start.Format(periodDateLayout),
			EndDate:   c.Mahadasha.End.Format(periodDateLayout),
		},
		CurrentBukthi: bukthiJSON{
			Bukthi:    c.Bhukti.Lord,
			StartDate: c.Bhukti.Start.Format(periodDateLayout),
			EndDate:   c.Bhukti.End.Format(periodDateLayout),
		},
		Transits: []any{},
		DailyDetails: dailyDetailsJSON{
			Sunrise: formatClock(c.Panchang.Sunrise),
			Sunset:  formatClock(c.Panchang.Sunset),
		},
		CurrentPanchang: currentPanchaJSON{
			CurrentMoonSign:  c.Panchang.MoonSign,
			CurrentTithi:     tithiNameJSON{CurrentTithiName: c.Panchang.Tithi.String()},
			CurrentKarana:    karanaNameJSON{CurrentKaranaName: c.Panchang.Karana},
			CurrentYoga:      yogaNameJSON{CurrentYogaName: c.Panchang.Yoga},
			CurrentNakshatra: nakshatraNameJSON{CurrentNakshatraName: c.Panchang.Nakshatra},
			CurrentSunRise:   formatClock(c.Panchang.Sunrise),
			CurrentSunSet:    formatClock(c.Panchang.Sunset),
		},
	}
}

func planetToWire(p models.GrahaPosition) planetJSON {
	return planetJSON{
		Planet:    p.Graha,
		Sign:      p.Sign,
		Degree:    formatDeg(p.Degree),
		Nakshatra: p.Nakshatra,
		Pada:      strconv.Itoa(p.Pada),
		Longitude: formatDeg(p.Longitude),
		IsRetro:   p.Retrograde,
	}
}

func placementsToWire(positions []models.GrahaPosition) []posItemJSON {
	out := make([]posItemJSON, 0, len(positions))
	for _, p := range positions {
		out = append(out, posItemJSON{
			Planet:    p.Graha,
			Sign:      p.Sign,
			Degree:    p.Degree,
			Nakshatra: p.Nakshatra,
			Pada:      p.Pada,
			Longitude: p.Longitude,
		})
	}
	return out
}

func panchangToWire(p models.Panchang) panchangResponse {
	resp := panchangResponse{
		MoonSign:  p.MoonSign,
		Tithi:     p.Tithi.String(),
		Yoga:      p.Yoga,
		Karana:    p.Karana,
		Nakshatra: p.Nakshatra,
		PolarDay:  p.PolarDay,
	}
	if !p.PolarDay {
		resp.Sunrise = p.Sunrise.Format(time.RFC3339)
		resp.Sunset = p.Sunset.Format(time.RFC3339)
	}
	return resp
}

func formatDeg(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatClock renders "06:35 AM" style times; empty when the sun never
// crosses the horizon.
func formatClock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(clockLayout)
}
