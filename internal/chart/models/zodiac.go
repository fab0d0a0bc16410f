package models

import "math"

// Signs lists the twelve rashis from Aries, 30 degrees each.
var Signs = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Nakshatras lists the 27 lunar mansions, 13°20' each.
var Nakshatras = []string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punavasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshta", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadra", "Uttara Bhadra", "Revati",
}

// TithiNames lists the fourteen ordinary tithis of a paksha. The fifteenth is
// Purnima in the bright half and Amavasya in the dark half.
var TithiNames = []string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami", "Shashthi",
	"Saptami", "Ashtami", "Navami", "Dashami", "Ekadashi", "Dwadashi",
	"Trayodashi", "Chaturdashi",
}

// YogaNames lists the 27 nityayogas indexed by (sun + moon) / 13°20'.
var YogaNames = []string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva", "Vyaghata",
	"Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana", "Parigha",
	"Shiva", "Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra",
	"Vaidhriti",
}

// movableKaranas repeat eight times through half-tithis 2-57; the four fixed
// karanas occupy the first and last three half-tithis of the lunation.
var movableKaranas = []string{
	"Bava", "Balava", "Kaulava", "Taitila", "Garaja", "Vanija", "Vishti",
}

// Vimshottari dasha system: nine lords cycling over 120 years, seeded by the
// natal moon's nakshatra.
var (
	DashaLords = []string{
		"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury",
	}
	DashaYears = []float64{7, 20, 6, 10, 7, 18, 16, 19, 17}
)

// DashaCycleYears is the length of the full Vimshottari cycle.
const DashaCycleYears = 120.0

const (
	degPerSign      = 30.0
	degPerNakshatra = 360.0 / 27.0
	degPerTithi     = 12.0
	degPerKarana    = 6.0
)

// SignOf returns the rashi name and degree within the sign for a sidereal
// longitude.
func SignOf(lon float64) (string, float64) {
	lon = normLon(lon)
	idx := int(lon / degPerSign)
	return Signs[idx], lon - float64(idx)*degPerSign
}

// NakshatraOf returns the nakshatra name and pada (1-4) for a sidereal
// longitude.
func NakshatraOf(lon float64) (string, int) {
	lon = normLon(lon)
	idx := int(lon / degPerNakshatra)
	pada := int(math.Mod(lon, degPerNakshatra)/(degPerNakshatra/4.0)) + 1
	return Nakshatras[idx], pada
}

// NakshatraLordIndex returns the Vimshottari lord index (into DashaLords) for
// the nakshatra containing lon.
func NakshatraLordIndex(lon float64) int {
	return int(normLon(lon)/degPerNakshatra) % len(DashaLords)
}

// NakshatraFraction returns how far through its nakshatra a longitude lies,
// in [0, 1). The dasha balance at birth is (1 - fraction) of the lord's term.
func NakshatraFraction(lon float64) float64 {
	return math.Mod(normLon(lon), degPerNakshatra) / degPerNakshatra
}

// Tithi is one of the thirty lunar days, identified by its half and name.
type Tithi struct {
	Paksha string `json:"paksha"`
	Name   string `json:"name"`
}

// String renders the conventional "Paksha Name" form.
func (t Tithi) String() string { return t.Paksha + " " + t.Name }

// TithiOf computes the tithi from moon and sun longitudes. The ayanamsa
// cancels in the difference, so tropical and sidereal inputs agree.
// The fifteenth tithi of the bright half is Purnima, of the dark half
// Amavasya.
func TithiOf(moonLon, sunLon float64) Tithi {
	diff := normLon(moonLon - sunLon)
	idx := int(diff / degPerTithi) // 0..29

	paksha := "Shukla"
	if idx >= 15 {
		paksha = "Krishna"
	}

	within := idx % 15
	if within < len(TithiNames) {
		return Tithi{Paksha: paksha, Name: TithiNames[within]}
	}
	if paksha == "Shukla" {
		return Tithi{Paksha: paksha, Name: "Purnima"}
	}
	return Tithi{Paksha: paksha, Name: "Amavasya"}
}

// YogaOf computes the nityayoga from the sum of sun and moon longitudes.
func YogaOf(moonLon, sunLon float64) string {
	sum := normLon(moonLon + sunLon)
	return YogaNames[int(sum/degPerNakshatra)]
}

// KaranaOf computes the karana (half-tithi) from moon and sun longitudes.
// Kimstughna opens the lunation, the seven movable karanas repeat through
// half-tithi 57, and Shakuni, Chatushpada and Naga close it.
func KaranaOf(moonLon, sunLon float64) string {
	diff := normLon(moonLon - sunLon)
	k := int(diff / degPerKarana) // 0..59
	switch {
	case k == 0:
		return "Kimstughna"
	case k < 57:
		return movableKaranas[(k-1)%len(movableKaranas)]
	case k == 57:
		return "Shakuni"
	case k == 58:
		return "Chatushpada"
	default:
		return "Naga"
	}
}

func normLon(lon float64) float64 {
	lon = math.Mod(lon, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon
}
