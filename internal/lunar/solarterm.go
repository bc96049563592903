package lunar

import (
	"fmt"

	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/rootfind"
)

const (
	// SolarTermCount covers one winter solstice to the next, inclusive.
	SolarTermCount = 25

	// MidTermCount is the number of 中气 among the SolarTermCount terms.
	MidTermCount = 13

	winterSolsticeLongitude = 270.0
	termStepDegrees         = 15.0
	termStepDays            = 15.0

	// startOfSpringIndex is 立春 (315°) counted from the winter solstice.
	startOfSpringIndex = 3
)

// SolarTerms returns the 25 solar-term instants (JD, UT) from the winter
// solstice of year to the winter solstice of year+1, 15° of solar longitude apart.
func SolarTerms(eph ephemeris.Ephemeris, year int) ([SolarTermCount]float64, error) {
	var jds [SolarTermCount]float64

	seed := eph.JulianDay(year, 12, 20, 0, ephemeris.Gregorian)
	solstice, err := SunLongitudeInstant(eph, seed, winterSolsticeLongitude)
	if err != nil {
		return jds, err
	}
	jds[0] = solstice

	for i := 1; i < SolarTermCount; i++ {
		target := rootfind.Norm360(winterSolsticeLongitude + termStepDegrees*float64(i))
		jd, err := SunLongitudeInstant(eph, jds[i-1]+termStepDays, target)
		if err != nil {
			return jds, err
		}
		if jd <= jds[i-1] {
			return jds, fmt.Errorf("%w: solar term %d (%.0f°) at jd %.6f is not after %.6f",
				rootfind.ErrNonConvergence, i, target, jd, jds[i-1])
		}
		jds[i] = jd
	}
	return jds, nil
}

// SunLongitudeInstant finds the instant near seed when the Sun's ecliptic
// longitude equals target degrees.
func SunLongitudeInstant(eph ephemeris.Ephemeris, seed, target float64) (float64, error) {
	return rootfind.Newton(seed, func(jd float64) (float64, error) {
		lon, err := ephemeris.Longitude(eph, jd, ephemeris.Sun)
		if err != nil {
			return 0, err
		}
		return rootfind.Wrap180(lon - target), nil
	})
}

// MidTerms extracts the 中气 (even indexes) from a solar-term sequence that
// starts at a winter solstice. The last one is the closing winter solstice.
func MidTerms(terms [SolarTermCount]float64) [MidTermCount]float64 {
	var mids [MidTermCount]float64
	for i := range mids {
		mids[i] = terms[2*i]
	}
	return mids
}
