package ephemeris

import (
	"math"
	"time"
)

// riseSetAltitude is the apparent solar altitude at rise/set: 16 arcminute
// semidiameter plus 34 arcminutes of standard refraction.
const riseSetAltitude = -0.833

// SunTimes returns sunrise and sunset for the calendar date of t, in t's
// location, for an observer at latDeg / east lonDeg. ok is false at polar
// latitudes when the sun never crosses the horizon that day.
func SunTimes(t time.Time, latDeg, lonDeg float64) (rise, set time.Time, ok bool) {
	loc := t.Location()
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
	jdNoon := JulianDay(noon)

	// Local transit: hour angle of the sun is zero when LST equals its right
	// ascension. One refinement pass is plenty at this accuracy.
	jdTransit := jdNoon
	for range 2 {
		ra, _ := sunEquatorial(jdTransit)
		offset := rev180(ra-GMST(jdTransit)-lonDeg) / 360.0
		jdTransit = jdTransit + offset
	}

	_, decl := sunEquatorial(jdTransit)
	phi := rad(latDeg)
	dRad := rad(decl)

	cosHA := (math.Sin(rad(riseSetAltitude)) - math.Sin(phi)*math.Sin(dRad)) /
		(math.Cos(phi) * math.Cos(dRad))
	if cosHA < -1.0 || cosHA > 1.0 {
		return time.Time{}, time.Time{}, false
	}

	haDays := deg(math.Acos(cosHA)) / 360.0
	rise = CivilUTC(jdTransit - haDays).In(loc)
	set = CivilUTC(jdTransit + haDays).In(loc)
	return rise, set, true
}

// sunEquatorial returns the sun's right ascension and declination (degrees).
func sunEquatorial(jd float64) (ra, decl float64) {
	lon := rad(TropicalLongitude(jd, Sun))
	eps := rad(obliquity(jd))

	ra = norm360(deg(math.Atan2(math.Sin(lon)*math.Cos(eps), math.Cos(lon))))
	decl = deg(math.Asin(math.Sin(lon) * math.Sin(eps)))
	return ra, decl
}

// rev180 normalizes an angle in degrees to (-180, 180].
func rev180(x float64) float64 {
	x = math.Mod(x, 360.0)
	if x <= -180.0 {
		x += 360.0
	} else if x > 180.0 {
		x -= 360.0
	}
	return x
}
