// Package lunar converts civil instants at UTC+8 into the Chinese
// lunisolar calendar.
//
// Everything is recomputed per query from an ephemeris.Ephemeris: the 25
// solar terms from the preceding winter solstice, the 15 new moons that
// cover them, and the lunar months those moons open.
package lunar

import (
	"fmt"
	"math"

	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/rootfind"
)

const (
	// TimezoneOffset is the fixed offset of Chinese civil time, in hours.
	TimezoneOffset = 8

	maxLunarDays = 30
)

// Convert renders the civil instant at UTC+8 in the lunisolar calendar.
// The first failure aborts the conversion.
func Convert(eph ephemeris.Ephemeris, year, month, day, hour, minute, second int) (Result, error) {
	if err := Validate(eph, year, month, day, hour, minute, second); err != nil {
		return Result{}, err
	}

	terms, err := SolarTerms(eph, year-1)
	if err != nil {
		return Result{}, fmt.Errorf("solar terms: %w", err)
	}
	moons, err := NewMoons(eph, terms[0])
	if err != nil {
		return Result{}, fmt.Errorf("new moons: %w", err)
	}
	months := ResolveLeap(BuildMonths(eph, moons), MidTerms(terms))

	var res Result
	for _, m := range months {
		if m.Leap {
			res.LeapYear = true
		}
	}

	local := ephemeris.DateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: float64(second)}
	jd := eph.JulianDay(year, month, day, local.HourFraction(), ephemeris.KindFor(year, month, day)) - TimezoneOffset/24.0
	res.JulianDay = jd

	cur, ok := locateMonth(months, jd)
	if !ok {
		return Result{}, fmt.Errorf("%w: jd %.6f", ErrOutOfRange, jd)
	}
	dayIndex := int(math.Floor(jd - cur.JD))
	if dayIndex < 0 || dayIndex >= maxLunarDays {
		return Result{}, fmt.Errorf("%w: day %d of month %d", ErrOutOfRange, dayIndex+1, cur.Number)
	}
	res.LunarMonthNumber = cur.Number
	res.IsLeapMonth = cur.Leap
	res.LunarMonth = MonthName(cur.Number, cur.Leap)
	res.LunarDayNumber = dayIndex + 1
	res.LunarDay = DayNames[dayIndex]

	if jd < firstMonth(months).JD {
		res.LunarYear = yearLabel(year - 1)
	} else {
		res.LunarYear = yearLabel(year)
	}
	if jd < terms[startOfSpringIndex] {
		res.YearGanZhi = yearLabel(year - 1)
	} else {
		res.YearGanZhi = yearLabel(year)
	}

	reference := eph.JulianDay(2017, 4, 6, 16, ephemeris.Gregorian)
	res.DayGanZhi = dayLabelEpoch.Offset(int(math.Floor(jd - reference)))

	sunLon, err := ephemeris.Longitude(eph, jd, ephemeris.Sun)
	if err != nil {
		return Result{}, err
	}
	monthIndex := solarMonthIndex(sunLon)
	res.MonthGanZhi = monthLabel(res.YearGanZhi.Stem(), monthIndex)
	res.HourGanZhi = hourLabel(res.DayGanZhi.Stem(), hour)

	res.SectionalTerm, res.MidTerm, err = boundingTerms(eph, jd, monthIndex)
	if err != nil {
		return Result{}, fmt.Errorf("bounding terms: %w", err)
	}
	return res, nil
}

// locateMonth finds the month whose [start, next start) holds jd.
func locateMonth(months [NewMoonCount]Month, jd float64) (Month, bool) {
	for i := 0; i < len(months)-1; i++ {
		if months[i].JD <= jd && jd < months[i+1].JD {
			return months[i], true
		}
	}
	return Month{}, false
}

// firstMonth is 正月 of the working set, or its first month if none is found.
func firstMonth(months [NewMoonCount]Month) Month {
	for _, m := range months {
		if m.Number == 1 && !m.Leap {
			return m
		}
	}
	return months[0]
}

func boundingTerms(eph ephemeris.Ephemeris, jd float64, monthIndex int) (SolarTerm, SolarTerm, error) {
	target := rootfind.Norm360(float64(monthIndex)*30 + majorSnowLongitude)
	first, err := SunLongitudeInstant(eph, jd, target)
	if err != nil {
		return SolarTerm{}, SolarTerm{}, err
	}
	second, err := SunLongitudeInstant(eph, first+termStepDays, rootfind.Norm360(target+termStepDegrees))
	if err != nil {
		return SolarTerm{}, SolarTerm{}, err
	}
	return solarTerm(eph, SolarTermNames[2*monthIndex], first),
		solarTerm(eph, SolarTermNames[2*monthIndex+1], second), nil
}

func solarTerm(eph ephemeris.Ephemeris, name string, jd float64) SolarTerm {
	local := jd + TimezoneOffset/24.0
	y, m, d, hour := eph.CivilDate(local, ephemeris.KindForJD(local))
	h, mi, sec := ephemeris.SplitHour(hour)
	return SolarTerm{
		Name:      name,
		Year:      y,
		Month:     m,
		Day:       d,
		Hour:      h,
		Minute:    mi,
		Second:    int(math.Floor(sec)),
		JulianDay: jd,
	}
}
