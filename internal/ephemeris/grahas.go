// Package ephemeris computes geocentric ecliptic positions of the nine grahas
// using truncated analytic series. Accuracy is at the arcminute level across
// 1800-2200, sufficient for sign, nakshatra and pada placement; it does not
// attempt the sub-arcsecond precision of a full numerical ephemeris.
package ephemeris

// Graha identifies one of the nine grahas of the sidereal chart.
type Graha string

const (
	Sun     Graha = "Sun"
	Moon    Graha = "Moon"
	Mars    Graha = "Mars"
	Mercury Graha = "Mercury"
	Jupiter Graha = "Jupiter"
	Venus   Graha = "Venus"
	Saturn  Graha = "Saturn"
	Rahu    Graha = "Rahu"
	Ketu    Graha = "Ketu"
)

// Grahas lists the nine grahas in the traditional ordering used for chart
// output. Rahu and Ketu are the mean lunar nodes, not bodies.
var Grahas = []Graha{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// IsNode reports whether g is one of the lunar nodes. The nodes have no
// independent speed or retrograde state in chart output.
func (g Graha) IsNode() bool {
	return g == Rahu || g == Ketu
}
