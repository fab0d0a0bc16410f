package ephemeris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDay(t *testing.T) {
	t.Run("J2000 epoch", func(t *testing.T) {
		jd := JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
		assert.InDelta(t, 2451545.0, jd, 1e-6)
	})

	t.Run("start of 1999", func(t *testing.T) {
		jd := JulianDay(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.InDelta(t, 2451179.5, jd, 1e-6)
	})

	t.Run("zoned input converts to UT", func(t *testing.T) {
		kolkata, err := time.LoadLocation("Asia/Kolkata")
		require.NoError(t, err)

		// 17:30 IST is 12:00 UT.
		local := time.Date(2000, 1, 1, 17, 30, 0, 0, kolkata)
		assert.InDelta(t, 2451545.0, JulianDay(local), 1e-6)
	})
}

func TestCivilUTC(t *testing.T) {
	t.Run("round trips civil time", func(t *testing.T) {
		for _, in := range []time.Time{
			time.Date(1970, 9, 4, 6, 5, 0, 0, time.UTC),
			time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
		} {
			out := CivilUTC(JulianDay(in))
			assert.WithinDuration(t, in, out, time.Second)
		}
	})

	t.Run("half day past epoch", func(t *testing.T) {
		got := CivilUTC(2451545.0)
		assert.Equal(t, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), got)
	})
}

func TestGMST(t *testing.T) {
	// Meeus, Astronomical Algorithms, example 12.a:
	// 1987 April 10, 0h UT -> mean sidereal time 197.693195 degrees.
	jd := JulianDay(time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 197.693195, GMST(jd), 0.001)
}

func TestNorm360(t *testing.T) {
	assert.InDelta(t, 10.0, norm360(370.0), 1e-9)
	assert.InDelta(t, 350.0, norm360(-10.0), 1e-9)
	assert.InDelta(t, 0.0, norm360(720.0), 1e-9)
}
