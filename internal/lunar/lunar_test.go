package lunar_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/ephemeris/ephemeristest"
	"github.com/tartampluch/go-lunarcal/internal/lunar"
)

func TestSolarTerms_Spacing(t *testing.T) {
	eph := &ephemeristest.Mean{}
	for _, year := range []int{1899, 2019, 2021, 2049} {
		terms, err := lunar.SolarTerms(eph, year)
		require.NoError(t, err)

		_, m, d, _ := eph.CivilDate(terms[0], ephemeris.Gregorian)
		assert.Equal(t, 12, m, "year %d", year)
		assert.InDelta(t, 21.5, float64(d), 2.5, "year %d", year)

		for i := 1; i < len(terms); i++ {
			gap := terms[i] - terms[i-1]
			assert.GreaterOrEqual(t, gap, 14.5, "year %d term %d", year, i)
			assert.LessOrEqual(t, gap, 15.8, "year %d term %d", year, i)
		}
		assert.InDelta(t, 365.2422, terms[24]-terms[0], 0.01)
	}
}

func TestNewMoons_Spacing(t *testing.T) {
	eph := &ephemeristest.Mean{}
	for _, year := range []int{1899, 2019, 2021, 2049} {
		terms, err := lunar.SolarTerms(eph, year)
		require.NoError(t, err)
		moons, err := lunar.NewMoons(eph, terms[0])
		require.NoError(t, err)

		assert.LessOrEqual(t, moons[0], terms[0])
		assert.Greater(t, moons[0], terms[0]-29.9)
		for i := 1; i < len(moons); i++ {
			gap := moons[i] - moons[i-1]
			assert.GreaterOrEqual(t, gap, 29.2, "year %d moon %d", year, i)
			assert.LessOrEqual(t, gap, 29.9, "year %d moon %d", year, i)
		}
	}
}

func TestBuildMonths_StartAtLocalMidnight(t *testing.T) {
	eph := &ephemeristest.Mean{}
	terms, err := lunar.SolarTerms(eph, 2021)
	require.NoError(t, err)
	moons, err := lunar.NewMoons(eph, terms[0])
	require.NoError(t, err)

	months := lunar.BuildMonths(eph, moons)
	want := []int{11, 12, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 1}
	for i, m := range months {
		assert.Equal(t, want[i], m.Number, "month %d", i)
		assert.False(t, m.Leap)

		// UT 16:00 of the previous day is midnight at UTC+8.
		local := m.JD + 0.5 + lunar.TimezoneOffset/24.0
		assert.InDelta(t, 0, local-math.Round(local), 1e-6, "month %d", i)
		assert.LessOrEqual(t, m.JD, moons[i])
		assert.Greater(t, m.JD+1, moons[i])
	}
}

func syntheticMonths() [lunar.NewMoonCount]lunar.Month {
	var months [lunar.NewMoonCount]lunar.Month
	for i := range months {
		n := (i + 11) % 12
		if n == 0 {
			n = 12
		}
		months[i] = lunar.Month{Number: n, JD: float64(30 * i)}
	}
	return months
}

func syntheticMids(start, step float64) [lunar.MidTermCount]float64 {
	var mids [lunar.MidTermCount]float64
	for i := range mids {
		mids[i] = start + step*float64(i)
	}
	return mids
}

func numbers(months [lunar.NewMoonCount]lunar.Month) []int {
	out := make([]int, len(months))
	for i, m := range months {
		out[i] = m.Number
	}
	return out
}

func TestResolveLeap_MonthWithoutMidTerm(t *testing.T) {
	months := lunar.ResolveLeap(syntheticMonths(), syntheticMids(5, 32.6))

	want := []int{11, 12, 1, 2, 3, 4, 5, 6, 7, 8, 8, 9, 10, 11, 12}
	if diff := cmp.Diff(want, numbers(months)); diff != "" {
		t.Errorf("month numbers mismatch (-want +got):\n%s", diff)
	}
	for i, m := range months {
		assert.Equal(t, i == 10, m.Leap, "month %d", i)
	}
}

func TestResolveLeap_TwelveMonths(t *testing.T) {
	in := syntheticMonths()
	out := lunar.ResolveLeap(in, syntheticMids(5, 30.4))
	assert.Equal(t, in, out)
}

func TestLeapMonths_MetonicCycle(t *testing.T) {
	eph := &ephemeristest.Mean{}
	leaps := 0
	for year := 2001; year < 2020; year++ {
		terms, err := lunar.SolarTerms(eph, year)
		require.NoError(t, err)
		moons, err := lunar.NewMoons(eph, terms[0])
		require.NoError(t, err)

		months := lunar.ResolveLeap(lunar.BuildMonths(eph, moons), lunar.MidTerms(terms))
		flagged := 0
		for _, m := range months {
			if m.Leap {
				flagged++
			}
		}
		assert.LessOrEqual(t, flagged, 1, "year %d", year)
		leaps += flagged
	}
	assert.GreaterOrEqual(t, leaps, 6)
	assert.LessOrEqual(t, leaps, 8)
}

func TestMidTerms(t *testing.T) {
	var terms [lunar.SolarTermCount]float64
	for i := range terms {
		terms[i] = float64(i)
	}
	mids := lunar.MidTerms(terms)
	assert.Equal(t, 0.0, mids[0])
	assert.Equal(t, 2.0, mids[1])
	assert.Equal(t, 24.0, mids[12])
}

func TestConvert_Mean(t *testing.T) {
	eph := &ephemeristest.Mean{}
	for year := 1990; year <= 2030; year += 4 {
		for month := 1; month <= 12; month += 2 {
			res, err := lunar.Convert(eph, year, month, 15, 12, 30, 0)
			require.NoError(t, err, "%d-%02d", year, month)

			assert.GreaterOrEqual(t, res.LunarDayNumber, 1)
			assert.LessOrEqual(t, res.LunarDayNumber, 30)
			assert.Equal(t, lunar.DayNames[res.LunarDayNumber-1], res.LunarDay)
			assert.Equal(t, lunar.MonthName(res.LunarMonthNumber, res.IsLeapMonth), res.LunarMonth)
			if res.IsLeapMonth {
				assert.True(t, res.LeapYear)
			}

			// The bounding terms enclose a 15° step of the Sun.
			gap := res.MidTerm.JulianDay - res.SectionalTerm.JulianDay
			assert.InDelta(t, 15.2, gap, 0.6)
			assert.Equal(t, int(res.SectionalTerm.Time().Add(8*time.Hour).Month()), res.SectionalTerm.Month)
		}
	}
}

func TestConvert_DayLabelAdvancesDaily(t *testing.T) {
	eph := &ephemeristest.Mean{}
	prev, err := lunar.Convert(eph, 2022, 1, 10, 10, 0, 0)
	require.NoError(t, err)
	for day := 11; day <= 20; day++ {
		res, err := lunar.Convert(eph, 2022, 1, day, 10, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, res.DayGanZhi.Difference(prev.DayGanZhi), "day %d", day)
		prev = res
	}
}

func TestConvert_RejectsBeforeAstronomy(t *testing.T) {
	cases := []struct {
		name                                     string
		year, month, day, hour, minute, second int
	}{
		{"year zero", 0, 1, 1, 0, 0, 0},
		{"month 13", 2022, 13, 1, 0, 0, 0},
		{"month 0", 2022, 0, 1, 0, 0, 0},
		{"day 32", 2022, 1, 32, 0, 0, 0},
		{"day 0", 2022, 1, 0, 0, 0, 0},
		{"hour 24", 2022, 1, 1, 24, 0, 0},
		{"minute 60", 2022, 1, 1, 0, 60, 0},
		{"negative second", 2022, 1, 1, 0, 0, -1},
		{"not a leap year", 2023, 2, 29, 0, 0, 0},
		{"april 31", 2022, 4, 31, 0, 0, 0},
		{"transition start", 1582, 10, 5, 12, 0, 0},
		{"transition end", 1582, 10, 14, 12, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eph := &ephemeristest.Mean{}
			_, err := lunar.Convert(eph, tc.year, tc.month, tc.day, tc.hour, tc.minute, tc.second)
			assert.ErrorIs(t, err, lunar.ErrInvalidInput)
			assert.Zero(t, eph.Calls)
		})
	}
}

func TestValidate_AcceptsCalendarEdges(t *testing.T) {
	eph := &ephemeristest.Mean{}
	assert.NoError(t, lunar.Validate(eph, 1582, 10, 4, 23, 59, 59))
	assert.NoError(t, lunar.Validate(eph, 1582, 10, 15, 0, 0, 0))
	assert.NoError(t, lunar.Validate(eph, 2024, 2, 29, 0, 0, 0))
	assert.NoError(t, lunar.Validate(eph, 1900, 2, 28, 0, 0, 0))
	assert.ErrorIs(t, lunar.Validate(eph, 1900, 2, 29, 0, 0, 0), lunar.ErrInvalidInput)
	// Julian rules: every fourth year is leap.
	assert.NoError(t, lunar.Validate(eph, 1500, 2, 29, 0, 0, 0))
	assert.NoError(t, lunar.Validate(eph, -500, 3, 1, 0, 0, 0))
}

func TestConvert_EphemerisFailureAborts(t *testing.T) {
	boom := errors.New("file not found")
	eph := &ephemeristest.Mean{Err: boom}

	_, err := lunar.Convert(eph, 2022, 1, 10, 22, 5, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, eph.Calls)
}
