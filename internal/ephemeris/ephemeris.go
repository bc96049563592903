// Package ephemeris defines the contract the lunar calendar core consumes
// from an ephemeris backend: ecliptic positions of the Sun and the Moon, and
// civil date <-> Julian day conversions that honour the Julian/Gregorian split.
//
// Implementations live in sub-packages: swiss wraps the Swiss Ephemeris and
// ephemeristest provides a deterministic mean-motion model for tests.
package ephemeris

import (
	"errors"
	"math"
)

var (
	// ErrConfiguration reports an unusable backend configuration, such as an empty data path.
	ErrConfiguration = errors.New("ephemeris configuration error")

	// ErrQuery reports a failed position or date query.
	ErrQuery = errors.New("ephemeris query failed")

	// ErrInvalidDate reports a civil date that does not exist in the selected calendar.
	ErrInvalidDate = errors.New("date does not exist")
)

// Body selects the celestial body of a position query.
type Body int

const (
	Sun Body = iota
	Moon
)

func (b Body) String() string {
	switch b {
	case Sun:
		return "sun"
	case Moon:
		return "moon"
	default:
		return "unknown"
	}
}

// CalendarKind selects the calendar used to interpret civil date fields.
type CalendarKind int

const (
	Julian CalendarKind = iota
	Gregorian
)

func (k CalendarKind) String() string {
	if k == Julian {
		return "julian"
	}
	return "gregorian"
}

// GregorianStartJD is the Julian day of 1582-10-15 00:00 UT, the first Gregorian day.
const GregorianStartJD = 2299160.5

// KindFor returns the calendar in force on a civil date: Julian before
// 1582-10-15, Gregorian from then on.
func KindFor(year, month, day int) CalendarKind {
	switch {
	case year < 1582:
		return Julian
	case year == 1582 && month < 10:
		return Julian
	case year == 1582 && month == 10 && day < 15:
		return Julian
	default:
		return Gregorian
	}
}

// KindForJD returns the calendar in force at a Julian day.
func KindForJD(jd float64) CalendarKind {
	if jd < GregorianStartJD {
		return Julian
	}
	return Gregorian
}

// DateTime is a set of civil date-time fields. Years are astronomical.
type DateTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// HourFraction returns the time of day in decimal hours.
func (dt DateTime) HourFraction() float64 {
	return float64(dt.Hour) + float64(dt.Minute)/60.0 + dt.Second/3600.0
}

// SplitHour breaks decimal hours into hour, minute and second fields.
func SplitHour(hour float64) (h, mi int, sec float64) {
	h = int(math.Floor(hour))
	minutes := (hour - float64(h)) * 60
	mi = int(math.Floor(minutes))
	sec = (minutes - float64(mi)) * 60
	return h, mi, sec
}

// Ephemeris is the backend contract. Implementations carry their own
// configuration; nothing is read from process-wide state by the caller.
type Ephemeris interface {
	// Position returns the six ecliptic coordinates of body at jd (UT):
	// longitude, latitude, distance and their daily speeds.
	Position(jd float64, body Body) ([6]float64, error)

	// JulianDay converts civil fields (hour in decimal hours) to a Julian day.
	JulianDay(year, month, day int, hour float64, kind CalendarKind) float64

	// CivilDate converts a Julian day back to civil fields.
	CivilDate(jd float64, kind CalendarKind) (year, month, day int, hour float64)

	// ShiftUTCOffset reads dt as local time at UTC+offsetHours and returns
	// the corresponding UTC fields. A negative offset converts UTC to local.
	ShiftUTCOffset(dt DateTime, offsetHours float64) DateTime

	// ValidateDate reports ErrInvalidDate if the date does not exist in kind.
	ValidateDate(year, month, day int, hour float64, kind CalendarKind) error

	// Close releases backend resources.
	Close() error
}

// Longitude returns the ecliptic longitude of body at jd, in degrees.
func Longitude(e Ephemeris, jd float64, body Body) (float64, error) {
	pos, err := e.Position(jd, body)
	if err != nil {
		return 0, err
	}
	return pos[0], nil
}
