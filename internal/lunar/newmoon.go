package lunar

import (
	"fmt"

	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/rootfind"
)

const (
	// NewMoonCount is the number of consecutive lunations computed per query.
	NewMoonCount = 15

	synodicMonth = 29.53
)

// NewMoons returns 15 consecutive new-moon instants (JD, UT), the first one
// at or before the winter solstice jd.
func NewMoons(eph ephemeris.Ephemeris, solstice float64) ([NewMoonCount]float64, error) {
	var jds [NewMoonCount]float64

	first, err := NewMoonInstant(eph, solstice)
	if err != nil {
		return jds, err
	}
	// Seeded past full moon, Newton lands on the following conjunction.
	if first > solstice {
		first, err = NewMoonInstant(eph, solstice-synodicMonth)
		if err != nil {
			return jds, err
		}
	}
	jds[0] = first

	for i := 1; i < NewMoonCount; i++ {
		jd, err := NewMoonInstant(eph, jds[i-1]+synodicMonth)
		if err != nil {
			return jds, err
		}
		if jd <= jds[i-1] {
			return jds, fmt.Errorf("%w: new moon %d at jd %.6f is not after %.6f",
				rootfind.ErrNonConvergence, i, jd, jds[i-1])
		}
		jds[i] = jd
	}
	return jds, nil
}

// NewMoonInstant finds the conjunction of the Moon and the Sun closest to
// seed in its own lunation.
func NewMoonInstant(eph ephemeris.Ephemeris, seed float64) (float64, error) {
	return rootfind.Newton(seed, func(jd float64) (float64, error) {
		sun, err := ephemeris.Longitude(eph, jd, ephemeris.Sun)
		if err != nil {
			return 0, err
		}
		moon, err := ephemeris.Longitude(eph, jd, ephemeris.Moon)
		if err != nil {
			return 0, err
		}
		return rootfind.Wrap180(rootfind.Norm360(moon - sun)), nil
	})
}
