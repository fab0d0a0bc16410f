package ephemeris

import "math"

// epochDay converts a julian day to days from the 1999 Dec 31.0 epoch the
// orbital element rates below are referred to.
func epochDay(jd float64) float64 { return jd - 2451543.5 }

// elements holds osculating orbital elements in degrees / AU, with linear
// rates per day from the element epoch.
type elements struct {
	N, nRate float64 // longitude of ascending node
	i, iRate float64 // inclination
	w, wRate float64 // argument of perihelion
	a        float64 // semi-major axis (AU; earth radii for the Moon)
	e, eRate float64 // eccentricity
	M, mRate float64 // mean anomaly
}

func (el elements) at(d float64) (N, i, w, a, e, M float64) {
	return norm360(el.N + el.nRate*d),
		el.i + el.iRate*d,
		norm360(el.w + el.wRate*d),
		el.a,
		el.e + el.eRate*d,
		norm360(el.M + el.mRate*d)
}

// Mean orbital elements of the major bodies (Schlyter's compact theory).
var (
	sunElements = elements{
		w: 282.9404, wRate: 4.70935e-5,
		a: 1.0,
		e: 0.016709, eRate: -1.151e-9,
		M: 356.0470, mRate: 0.9856002585,
	}
	moonElements = elements{
		N: 125.1228, nRate: -0.0529538083,
		i: 5.1454,
		w: 318.0634, wRate: 0.1643573223,
		a: 60.2666,
		e: 0.054900,
		M: 115.3654, mRate: 13.0649929509,
	}
	mercuryElements = elements{
		N: 48.3313, nRate: 3.24587e-5,
		i: 7.0047, iRate: 5.00e-8,
		w: 29.1241, wRate: 1.01444e-5,
		a: 0.387098,
		e: 0.205635, eRate: 5.59e-10,
		M: 168.6562, mRate: 4.0923344368,
	}
	venusElements = elements{
		N: 76.6799, nRate: 2.46590e-5,
		i: 3.3946, iRate: 2.75e-8,
		w: 54.8910, wRate: 1.38374e-5,
		a: 0.723330,
		e: 0.006773, eRate: -1.302e-9,
		M: 48.0052, mRate: 1.6021302244,
	}
	marsElements = elements{
		N: 49.5574, nRate: 2.11081e-5,
		i: 1.8497, iRate: -1.78e-8,
		w: 286.5016, wRate: 2.92961e-5,
		a: 1.523688,
		e: 0.093405, eRate: 2.516e-9,
		M: 18.6021, mRate: 0.5240207766,
	}
	jupiterElements = elements{
		N: 100.4542, nRate: 2.76854e-5,
		i: 1.3030, iRate: -1.557e-7,
		w: 273.8777, wRate: 1.64505e-5,
		a: 5.20256,
		e: 0.048498, eRate: 4.469e-9,
		M: 19.8950, mRate: 0.0830853001,
	}
	saturnElements = elements{
		N: 113.6634, nRate: 2.38980e-5,
		i: 2.4886, iRate: -1.081e-7,
		w: 339.3939, wRate: 2.97661e-5,
		a: 9.55475,
		e: 0.055546, eRate: -9.499e-9,
		M: 316.9670, mRate: 0.0334442282,
	}
)

// eccentricAnomaly solves Kepler's equation M = E - e*sin(E) by Newton
// iteration. M in degrees, result in degrees.
func eccentricAnomaly(M, e float64) float64 {
	mRad := rad(M)
	E := mRad + e*math.Sin(mRad)*(1.0+e*math.Cos(mRad))
	for range 20 {
		dE := (E - e*math.Sin(E) - mRad) / (1.0 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-8 {
			break
		}
	}
	return deg(E)
}

// orbitalPosition returns the true anomaly (degrees) and radius (in the
// element's distance unit) for a body at day d.
func orbitalPosition(el elements, d float64) (v, r float64) {
	_, _, _, a, e, M := el.at(d)
	E := rad(eccentricAnomaly(M, e))
	xv := a * (math.Cos(E) - e)
	yv := a * math.Sqrt(1.0-e*e) * math.Sin(E)
	return norm360(deg(math.Atan2(yv, xv))), math.Sqrt(xv*xv + yv*yv)
}

// heliocentric returns the in-plane ecliptic rectangular coordinates of a
// planet relative to the sun at day d. The out-of-plane component never
// enters the longitude, so it is not computed.
func heliocentric(el elements, d float64) (x, y float64) {
	N, i, w, _, _, _ := el.at(d)
	v, r := orbitalPosition(el, d)

	nR, iR, vwR := rad(N), rad(i), rad(v+w)
	x = r * (math.Cos(nR)*math.Cos(vwR) - math.Sin(nR)*math.Sin(vwR)*math.Cos(iR))
	y = r * (math.Sin(nR)*math.Cos(vwR) + math.Cos(nR)*math.Sin(vwR)*math.Cos(iR))
	return x, y
}

// sunLongitude returns the geocentric tropical longitude of the sun and its
// distance in AU at day d.
func sunLongitude(d float64) (lon, r float64) {
	_, _, w, _, _, _ := sunElements.at(d)
	v, r := orbitalPosition(sunElements, d)
	return norm360(v + w), r
}

// moonLongitude returns the geocentric tropical longitude of the moon at day
// d, including the dominant perturbation terms (evection, variation, yearly
// equation and friends). Truncation error stays under a few arcminutes.
func moonLongitude(d float64) float64 {
	x, y := heliocentric(moonElements, d)
	lon := norm360(deg(math.Atan2(y, x)))

	_, _, wm, _, _, Mm := moonElements.at(d)
	Nm := norm360(moonElements.N + moonElements.nRate*d)
	_, _, ws, _, _, Ms := sunElements.at(d)

	Ls := norm360(Ms + ws)      // sun mean longitude
	Lm := norm360(Mm + wm + Nm) // moon mean longitude
	D := rad(norm360(Lm - Ls)) // mean elongation
	F := rad(norm360(Lm - Nm)) // argument of latitude
	mm := rad(Mm)
	ms := rad(Ms)

	lon += -1.274 * math.Sin(mm-2*D)
	lon += +0.658 * math.Sin(2*D)
	lon += -0.186 * math.Sin(ms)
	lon += -0.059 * math.Sin(2*mm-2*D)
	lon += -0.057 * math.Sin(mm-2*D+ms)
	lon += +0.053 * math.Sin(mm+2*D)
	lon += +0.046 * math.Sin(2*D-ms)
	lon += +0.041 * math.Sin(mm-ms)
	lon += -0.035 * math.Sin(D)
	lon += -0.031 * math.Sin(mm+ms)
	lon += -0.015 * math.Sin(2*F-2*D)
	lon += +0.011 * math.Sin(mm-4*D)

	return norm360(lon)
}

// planetLongitude returns the geocentric tropical longitude of a major planet
// at day d, with the great Jupiter-Saturn perturbation terms applied.
func planetLongitude(el elements, d float64, g Graha) float64 {
	xh, yh := heliocentric(el, d)

	if g == Jupiter || g == Saturn {
		lonCorr := jupiterSaturnPerturbation(d, g)
		lonH := deg(math.Atan2(yh, xh)) + lonCorr
		rXY := math.Hypot(xh, yh)
		xh = rXY * math.Cos(rad(lonH))
		yh = rXY * math.Sin(rad(lonH))
	}

	lonSun, rSun := sunLongitude(d)
	xs := rSun * math.Cos(rad(lonSun))
	ys := rSun * math.Sin(rad(lonSun))

	xg := xh + xs
	yg := yh + ys

	return norm360(deg(math.Atan2(yg, xg)))
}

// jupiterSaturnPerturbation returns the longitude correction (degrees) from
// the 5:2 near-resonance between Jupiter and Saturn.
func jupiterSaturnPerturbation(d float64, g Graha) float64 {
	Mj := rad(norm360(jupiterElements.M + jupiterElements.mRate*d))
	Ms := rad(norm360(saturnElements.M + saturnElements.mRate*d))

	switch g {
	case Jupiter:
		return -0.332*math.Sin(2*Mj-5*Ms-rad(67.6)) -
			0.056*math.Sin(2*Mj-2*Ms+rad(21)) +
			0.042*math.Sin(3*Mj-5*Ms+rad(21)) -
			0.036*math.Sin(Mj-2*Ms) +
			0.022*math.Cos(Mj-Ms) +
			0.023*math.Sin(2*Mj-3*Ms+rad(52)) -
			0.016*math.Sin(Mj-5*Ms-rad(69))
	case Saturn:
		return 0.812*math.Sin(2*Mj-5*Ms-rad(67.6)) -
			0.229*math.Cos(2*Mj-4*Ms-rad(2)) +
			0.119*math.Sin(Mj-2*Ms-rad(3)) +
			0.046*math.Sin(2*Mj-6*Ms-rad(69)) +
			0.014*math.Sin(Mj-3*Ms+rad(32))
	}
	return 0
}

// meanNode returns the longitude of the mean ascending lunar node (Rahu).
func meanNode(d float64) float64 {
	return norm360(moonElements.N + moonElements.nRate*d)
}

// TropicalLongitude returns the geocentric tropical ecliptic longitude of a
// graha, in degrees [0, 360).
func TropicalLongitude(jd float64, g Graha) float64 {
	d := epochDay(jd)
	switch g {
	case Sun:
		lon, _ := sunLongitude(d)
		return lon
	case Moon:
		return moonLongitude(d)
	case Mercury:
		return planetLongitude(mercuryElements, d, g)
	case Venus:
		return planetLongitude(venusElements, d, g)
	case Mars:
		return planetLongitude(marsElements, d, g)
	case Jupiter:
		return planetLongitude(jupiterElements, d, g)
	case Saturn:
		return planetLongitude(saturnElements, d, g)
	case Rahu:
		return meanNode(d)
	case Ketu:
		return norm360(meanNode(d) + 180.0)
	}
	return 0
}

// SiderealLongitude returns the Lahiri sidereal longitude of a graha.
func SiderealLongitude(jd float64, g Graha) float64 {
	return norm360(TropicalLongitude(jd, g) - Ayanamsa(jd))
}

// LongitudeSpeed returns the rate of change of tropical longitude in
// degrees per day, by symmetric finite difference. Negative speed means the
// graha is retrograde.
func LongitudeSpeed(jd float64, g Graha) float64 {
	const step = 0.5
	before := TropicalLongitude(jd-step, g)
	after := TropicalLongitude(jd+step, g)
	diff := math.Mod(after-before+540.0, 360.0) - 180.0
	return diff / (2 * step)
}
