package ephemeris

// Ayanamsa returns the Lahiri (Chitrapaksha) ayanamsa in degrees at jd.
//
// Polynomial fit anchored at J2000 (23°51'08.5") with the general precession
// rate. Stays within about an arcminute of the reference value over
// 1800-2200, which is what the placement logic needs; it is not a
// reproduction of the official ephemeris tables.
func Ayanamsa(jd float64) float64 {
	t := (jd - J2000) / 36525.0
	return 23.85236 + 1.396971*t + 0.000308*t*t
}
