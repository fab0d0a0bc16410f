package ephemeris

import "math"

// obliquity returns the mean obliquity of the ecliptic in degrees at jd.
func obliquity(jd float64) float64 {
	return 23.4393 - 3.563e-7*epochDay(jd)
}

// Ascendant returns the tropical ecliptic longitude of the ascendant (lagna)
// for an observer at geographic latitude latDeg and east longitude lonDeg.
func Ascendant(jd, latDeg, lonDeg float64) float64 {
	ramc := rad(norm360(GMST(jd) + lonDeg)) // local sidereal time
	eps := rad(obliquity(jd))
	phi := rad(latDeg)

	// Standard rising-point formula; atan2 keeps the quadrant right for all
	// sidereal times including the 90/270 degree crossings.
	asc := math.Atan2(
		math.Cos(ramc),
		-(math.Sin(ramc)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)),
	)
	return norm360(deg(asc))
}

// SiderealAscendant returns the Lahiri sidereal longitude of the ascendant.
func SiderealAscendant(jd, latDeg, lonDeg float64) float64 {
	return norm360(Ascendant(jd, latDeg, lonDeg) - Ayanamsa(jd))
}
