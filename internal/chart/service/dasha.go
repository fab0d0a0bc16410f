package service

import (
	"time"

	"jyotish/internal/chart/models"
	"jyotish/internal/ephemeris"
)

// daysPerYear is the tropical year length used for dasha arithmetic.
const daysPerYear = 365.2422

// vimshottari returns the mahadasha and bhukti running at now for a natal
// moon longitude.
//
// The natal moon's nakshatra fixes the opening lord; the fraction of the
// nakshatra already traversed at birth consumes the same fraction of that
// lord's term, so the opening mahadasha began before the birth itself.
// Subsequent lords follow in table order over the 120 year cycle. Within a
// mahadasha the bhukti sequence starts with the mahadasha lord and each
// bhukti lasts mahaYears * bhuktiLordYears / 120.
func vimshottari(moonLon, jdBirth float64, loc *time.Location, now time.Time) (maha, bhukti models.DashaPeriod) {
	jdNow := ephemeris.JulianDay(now)

	lordIdx := models.NakshatraLordIndex(moonLon)
	elapsedFrac := models.NakshatraFraction(moonLon)

	// Start of the birth mahadasha, projected back before birth.
	start := jdBirth - elapsedFrac*models.DashaYears[lordIdx]*daysPerYear

	idx := lordIdx
	for {
		years := models.DashaYears[idx%len(models.DashaLords)]
		end := start + years*daysPerYear
		if end > jdNow {
			maha = models.DashaPeriod{
				Lord:  models.DashaLords[idx%len(models.DashaLords)],
				Start: ephemeris.CivilUTC(start).In(loc),
				End:   ephemeris.CivilUTC(end).In(loc),
			}
			bhukti = currentBhukti(start, years, idx, jdNow, loc)
			return maha, bhukti
		}
		start = end
		idx++
	}
}

// currentBhukti locates the sub-period of the running mahadasha containing
// jdNow.
func currentBhukti(mahaStart, mahaYears float64, mahaIdx int, jdNow float64, loc *time.Location) models.DashaPeriod {
	n := len(models.DashaLords)
	cursor := mahaStart
	for b := range n {
		lordIdx := (mahaIdx + b) % n
		days := mahaYears * models.DashaYears[lordIdx] / models.DashaCycleYears * daysPerYear
		if jdNow < cursor+days || b == n-1 {
			return models.DashaPeriod{
				Lord:  models.DashaLords[lordIdx],
				Start: ephemeris.CivilUTC(cursor).In(loc),
				End:   ephemeris.CivilUTC(cursor + days).In(loc),
			}
		}
		cursor += days
	}
	// Unreachable: the bhuktis tile the mahadasha exactly.
	return models.DashaPeriod{}
}
