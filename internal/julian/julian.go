// Package julian converts between civil calendar fields and Julian days
// without any ephemeris data. It implements the date half of the
// ephemeris contract on top of the Meeus calendar routines.
package julian

import (
	"fmt"
	"math"
	"time"

	meeus "github.com/soniakeys/meeus/v3/julian"
	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
)

const (
	// julianCycleDays is four Julian years; dates repeat after it.
	julianCycleDays = 1461

	// gregorianCycleDays is 400 Gregorian years; dates repeat after it.
	gregorianCycleDays = 146097

	// julianWindowEnd keeps Julian lookups well before the reform, where
	// JDToCalendar always answers in the Julian calendar.
	julianWindowEnd = 2200000.0
)

// ToJD converts civil fields to a Julian day. Hours are decimal; years are
// astronomical (year 0 is 1 BC).
func ToJD(year, month, day int, hour float64, kind ephemeris.CalendarKind) float64 {
	d := float64(day) + hour/24
	if kind == ephemeris.Gregorian {
		return meeus.CalendarGregorianToJD(year, month, d)
	}
	return meeus.CalendarJulianToJD(year, month, d)
}

// FromJD converts a Julian day to civil fields.
func FromJD(jd float64, kind ephemeris.CalendarKind) (year, month, day int, hour float64) {
	if kind == ephemeris.Gregorian {
		t := Time(jd)
		y, m, d := t.Date()
		midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return y, int(m), d, t.Sub(midnight).Hours()
	}

	cycles := 0
	switch {
	case jd >= julianWindowEnd:
		cycles = int(math.Ceil((jd - julianWindowEnd + 1) / julianCycleDays))
	case jd < 0:
		cycles = -int(math.Ceil(-jd / julianCycleDays))
	}
	y, m, d := meeus.JDToCalendar(jd - float64(cycles*julianCycleDays))
	whole := math.Floor(d)
	return y + 4*cycles, m, int(whole), (d - whole) * 24
}

// Shift reads dt as local time at UTC+offsetHours and returns UTC fields.
// The arithmetic runs on the proleptic Gregorian calendar.
func Shift(dt ephemeris.DateTime, offsetHours float64) ephemeris.DateTime {
	jd := ToJD(dt.Year, dt.Month, dt.Day, dt.HourFraction(), ephemeris.Gregorian) - offsetHours/24
	y, m, d, hour := FromJD(jd, ephemeris.Gregorian)
	h, mi, sec := ephemeris.SplitHour(hour)
	return ephemeris.DateTime{Year: y, Month: m, Day: d, Hour: h, Minute: mi, Second: sec}
}

// Validate reports whether the date exists in the given calendar by
// converting it to a Julian day and back.
func Validate(year, month, day int, hour float64, kind ephemeris.CalendarKind) error {
	if hour < 0 || hour >= 24 {
		return fmt.Errorf("%w: hour %v", ephemeris.ErrInvalidDate, hour)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ephemeris.ErrInvalidDate, month)
	}
	y, m, d, _ := FromJD(ToJD(year, month, day, 0, kind), kind)
	if y != year || m != month || d != day {
		return fmt.Errorf("%w: %d-%02d-%02d (%s)", ephemeris.ErrInvalidDate, year, month, day, kind)
	}
	return nil
}

// Time converts a Julian day (UT) to a time.Time in UTC on the proleptic
// Gregorian calendar. Instants before the reform are moved forward by whole
// 400-year cycles for the conversion and moved back afterwards.
func Time(jd float64) time.Time {
	cycles := 0
	if jd < ephemeris.GregorianStartJD {
		cycles = int(math.Ceil((ephemeris.GregorianStartJD - jd) / gregorianCycleDays))
	}
	t := meeus.JDToTime(jd + float64(cycles*gregorianCycleDays))
	return t.AddDate(-400*cycles, 0, 0).UTC().Round(time.Microsecond)
}

// FromTime converts a time.Time to a Julian day (UT).
func FromTime(t time.Time) float64 {
	return meeus.TimeToJD(t.UTC())
}
