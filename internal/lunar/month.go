package lunar

import "github.com/tartampluch/go-lunarcal/internal/ephemeris"

// Month is one lunar month of the working set.
type Month struct {
	// Number runs 1..12; a leap month repeats the number of the month before it.
	Number int
	Leap   bool

	// JD is local (UTC+8) midnight of the month's first day, expressed in UT.
	JD float64
}

// BuildMonths turns new-moon instants into months starting at local
// midnight. The first month, which holds the winter solstice, is numbered 11.
func BuildMonths(eph ephemeris.Ephemeris, newMoons [NewMoonCount]float64) [NewMoonCount]Month {
	var months [NewMoonCount]Month
	for i, jd := range newMoons {
		y, m, d, hour := eph.CivilDate(jd, ephemeris.Gregorian)
		h, mi, sec := ephemeris.SplitHour(hour)

		local := eph.ShiftUTCOffset(ephemeris.DateTime{Year: y, Month: m, Day: d, Hour: h, Minute: mi, Second: sec}, -TimezoneOffset)
		midnight := eph.ShiftUTCOffset(ephemeris.DateTime{Year: local.Year, Month: local.Month, Day: local.Day}, TimezoneOffset)

		months[i] = Month{
			Number: wrapMonth((i + 11) % 12),
			JD:     eph.JulianDay(midnight.Year, midnight.Month, midnight.Day, midnight.HourFraction(), ephemeris.Gregorian),
		}
	}
	return months
}

// ResolveLeap applies the rule of the month without a mid-term. When 13 new
// moons begin between two winter solstices, the first month containing none
// of the 12 mid-terms preceding the closing solstice is leap, and it and every
// later month are renumbered one lower.
func ResolveLeap(months [NewMoonCount]Month, mids [MidTermCount]float64) [NewMoonCount]Month {
	closing := mids[MidTermCount-1]

	started := len(months)
	for i, m := range months {
		if m.JD > closing {
			started = i
			break
		}
	}
	// The month holding the opening solstice is counted too.
	if started-1 == 12 {
		return months
	}

	for i := 0; i < len(months)-1; i++ {
		if containsMidTerm(months[i].JD, months[i+1].JD, mids[:MidTermCount-1]) {
			continue
		}
		months[i].Leap = true
		for j := i; j < len(months); j++ {
			months[j].Number = wrapMonth(months[j].Number - 1)
		}
		break
	}
	return months
}

func containsMidTerm(start, end float64, mids []float64) bool {
	for _, jd := range mids {
		if start <= jd && jd < end {
			return true
		}
	}
	return false
}

func wrapMonth(n int) int {
	if n <= 0 {
		return n + 12
	}
	return n
}
