// Package ephemeristest provides an ephemeris.Ephemeris for tests that needs
// neither cgo nor data files.
//
// Mean moves the Sun and the Moon at their mean angular rates. Instants it
// produces can be hours away from the true ones, but the structure of the
// calendar (term spacing, lunation length, leap months) is realistic.
package ephemeristest

import (
	"fmt"

	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/julian"
	"github.com/tartampluch/go-lunarcal/internal/rootfind"
)

const (
	j2000 = 2451545.0

	sunLongitudeJ2000  = 280.46646
	sunRate            = 0.98564736629 // degrees per day
	moonLongitudeJ2000 = 218.3164477
	moonRate           = 13.17639648 // degrees per day
)

// Mean is a mean-motion ephemeris. The zero value is ready to use.
type Mean struct {
	// Err, when set, is returned by every Position call.
	Err error

	// Calls counts Position calls.
	Calls int

	// Closed records whether Close was called.
	Closed bool
}

var _ ephemeris.Ephemeris = (*Mean)(nil)

func (m *Mean) Position(jd float64, body ephemeris.Body) ([6]float64, error) {
	m.Calls++
	if m.Err != nil {
		return [6]float64{}, m.Err
	}
	days := jd - j2000
	switch body {
	case ephemeris.Sun:
		return [6]float64{rootfind.Norm360(sunLongitudeJ2000 + sunRate*days), 0, 1, sunRate, 0, 0}, nil
	case ephemeris.Moon:
		return [6]float64{rootfind.Norm360(moonLongitudeJ2000 + moonRate*days), 0, 0.00257, moonRate, 0, 0}, nil
	default:
		return [6]float64{}, fmt.Errorf("%w: unsupported body %s", ephemeris.ErrQuery, body)
	}
}

func (m *Mean) JulianDay(year, month, day int, hour float64, kind ephemeris.CalendarKind) float64 {
	return julian.ToJD(year, month, day, hour, kind)
}

func (m *Mean) CivilDate(jd float64, kind ephemeris.CalendarKind) (int, int, int, float64) {
	return julian.FromJD(jd, kind)
}

func (m *Mean) ShiftUTCOffset(dt ephemeris.DateTime, offsetHours float64) ephemeris.DateTime {
	return julian.Shift(dt, offsetHours)
}

func (m *Mean) ValidateDate(year, month, day int, hour float64, kind ephemeris.CalendarKind) error {
	return julian.Validate(year, month, day, hour, kind)
}

func (m *Mean) Close() error {
	m.Closed = true
	return nil
}
