// Package swiss adapts the Swiss Ephemeris (through swephgo) to the
// ephemeris.Ephemeris contract.
//
// The C library keeps its data path and open files in process-wide state.
// Every call into it holds a package mutex, and the path is switched only
// when a different adapter instance calls in, so adapters configured with
// different paths can be used from concurrent goroutines.
package swiss

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mshafiee/swephgo"
	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
)

const errBufferSize = 256

var (
	mu         sync.Mutex
	activePath string
)

// Ephemeris is a Swiss Ephemeris backend bound to one data path.
type Ephemeris struct {
	path    string
	moshier bool
}

var _ ephemeris.Ephemeris = (*Ephemeris)(nil)

// Option customizes an Ephemeris.
type Option func(*Ephemeris)

// WithMoshier selects the built-in Moshier analytic ephemeris. No data files
// are read, but the path is still required.
func WithMoshier() Option {
	return func(e *Ephemeris) { e.moshier = true }
}

// New returns an adapter reading ephemeris files from path.
func New(path string, opts ...Option) (*Ephemeris, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: ephemeris path is empty", ephemeris.ErrConfiguration)
	}
	e := &Ephemeris{path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Path returns the configured data path.
func (e *Ephemeris) Path() string { return e.path }

// Position computes the apparent geocentric ecliptic position of body at jd (UT).
func (e *Ephemeris) Position(jd float64, body ephemeris.Body) ([6]float64, error) {
	var pos [6]float64

	mu.Lock()
	defer mu.Unlock()

	if activePath != e.path {
		swephgo.SetEphePath([]byte(e.path))
		activePath = e.path
	}

	xx := make([]float64, 6)
	serr := make([]byte, errBufferSize)
	ok, err := calcUt(jd, body, e.moshier, xx, serr)
	if err != nil {
		return pos, err
	}

	msg := strings.TrimRight(string(serr), "\x00")
	if !ok || msg != "" {
		return pos, fmt.Errorf("%w: swe_calc_ut(%s, jd=%.6f): %s", ephemeris.ErrQuery, body, jd, msg)
	}
	copy(pos[:], xx)
	return pos, nil
}

// calcUt dispatches on body and flag with the untyped swephgo constants.
func calcUt(jd float64, body ephemeris.Body, moshier bool, xx []float64, serr []byte) (bool, error) {
	switch {
	case body == ephemeris.Sun && moshier:
		return swephgo.CalcUt(jd, swephgo.SeSun, swephgo.SeflgMoseph, xx, serr) >= 0, nil
	case body == ephemeris.Sun:
		return swephgo.CalcUt(jd, swephgo.SeSun, swephgo.SeflgSwieph, xx, serr) >= 0, nil
	case body == ephemeris.Moon && moshier:
		return swephgo.CalcUt(jd, swephgo.SeMoon, swephgo.SeflgMoseph, xx, serr) >= 0, nil
	case body == ephemeris.Moon:
		return swephgo.CalcUt(jd, swephgo.SeMoon, swephgo.SeflgSwieph, xx, serr) >= 0, nil
	default:
		return false, fmt.Errorf("%w: unsupported body %s", ephemeris.ErrQuery, body)
	}
}

func (e *Ephemeris) JulianDay(year, month, day int, hour float64, kind ephemeris.CalendarKind) float64 {
	var gregflag int32 = swephgo.SeGregCal
	if kind == ephemeris.Julian {
		gregflag = swephgo.SeJulCal
	}
	return swephgo.Julday(year, month, day, hour, gregflag)
}

func (e *Ephemeris) CivilDate(jd float64, kind ephemeris.CalendarKind) (int, int, int, float64) {
	var gregflag int = swephgo.SeGregCal
	if kind == ephemeris.Julian {
		gregflag = swephgo.SeJulCal
	}
	y := make([]int, 1)
	m := make([]int, 1)
	d := make([]int, 1)
	hour := make([]float64, 1)
	swephgo.Revjul(jd, gregflag, y, m, d, hour)
	return y[0], m[0], d[0], hour[0]
}

func (e *Ephemeris) ShiftUTCOffset(dt ephemeris.DateTime, offsetHours float64) ephemeris.DateTime {
	y := make([]int, 1)
	m := make([]int, 1)
	d := make([]int, 1)
	h := make([]int, 1)
	mi := make([]int, 1)
	sec := make([]float64, 1)
	swephgo.UtcTimeZone(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, offsetHours,
		y, m, d, h, mi, sec)
	return ephemeris.DateTime{Year: y[0], Month: m[0], Day: d[0], Hour: h[0], Minute: mi[0], Second: sec[0]}
}

// ValidateDate round-trips the date through swe_date_conversion. Leap
// seconds are not representable there, so 23:59:60 rolls over.
func (e *Ephemeris) ValidateDate(year, month, day int, hour float64, kind ephemeris.CalendarKind) error {
	var calendar byte = 'g'
	if kind == ephemeris.Julian {
		calendar = 'j'
	}
	tjd := make([]float64, 1)
	if ret := swephgo.DateConversion(year, month, day, hour, calendar, tjd); ret == swephgo.Err {
		return fmt.Errorf("%w: %d-%02d-%02d (%s)", ephemeris.ErrInvalidDate, year, month, day, kind)
	}
	return nil
}

// Close releases the files held by the C library.
func (e *Ephemeris) Close() error {
	mu.Lock()
	defer mu.Unlock()
	if activePath == e.path {
		swephgo.Close()
		activePath = ""
	}
	return nil
}
