package ephemeris

import (
	"math"
	"time"
)

// J2000 is the julian day of the standard epoch 2000 January 1.5 TT.
const J2000 = 2451545.0

// JulianDay converts a civil instant to a julian day number in Universal Time.
// The instant is converted to UTC before the calendar arithmetic, so callers
// can pass zoned times directly.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y := t.Year()
	m := int(t.Month())
	if m <= 2 {
		y--
		m += 12
	}

	day := float64(t.Day()) +
		(float64(t.Hour())+float64(t.Minute())/60.0+float64(t.Second())/3600.0)/24.0

	a := math.Floor(float64(y) / 100.0)
	b := 2 - a + math.Floor(a/4.0)

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		day + b - 1524.5
}

// CivilUTC converts a julian day back to a civil instant in UTC, rounded to
// the nearest second. Only valid for the Gregorian calendar era.
func CivilUTC(jd float64) time.Time {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4.0)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	dayFrac := b - d - math.Floor(30.6001*e) + f
	day := int(dayFrac)

	month := int(e - 1)
	if e >= 14 {
		month = int(e - 13)
	}
	year := int(c - 4715)
	if month > 2 {
		year = int(c - 4716)
	}

	secs := (dayFrac - float64(day)) * 86400.0
	h := int(secs / 3600.0)
	m := int(secs/60.0) - h*60
	s := int(math.Round(secs - float64(h)*3600 - float64(m)*60))

	return time.Date(year, time.Month(month), day, h, m, s, 0, time.UTC)
}

// GMST returns the Greenwich mean sidereal time at jd, in degrees.
func GMST(jd float64) float64 {
	t := (jd - J2000) / 36525.0
	st := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*t*t -
		t*t*t/38710000.0
	return norm360(st)
}

// norm360 normalizes an angle in degrees to [0, 360).
func norm360(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

func rad(deg float64) float64 { return deg * math.Pi / 180.0 }

func deg(rad float64) float64 { return rad * 180.0 / math.Pi }
