package julian_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/julian"
)

func TestToJD_KnownEpochs(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		hour             float64
		kind             ephemeris.CalendarKind
		want             float64
	}{
		{"J2000", 2000, 1, 1, 12, ephemeris.Gregorian, 2451545.0},
		{"unix epoch", 1970, 1, 1, 0, ephemeris.Gregorian, 2440587.5},
		{"gregorian reform", 1582, 10, 15, 0, ephemeris.Gregorian, 2299160.5},
		{"day before reform", 1582, 10, 4, 0, ephemeris.Julian, 2299159.5},
		{"meeus 333-01-27", 333, 1, 27, 12, ephemeris.Julian, 1842713.0},
		{"meeus -1000-07-12", -1000, 7, 12, 12, ephemeris.Julian, 1356001.0},
		{"day reference", 2017, 4, 6, 16, ephemeris.Gregorian, 2457850.166666667},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, julian.ToJD(tt.year, tt.month, tt.day, tt.hour, tt.kind), 1e-6)
		})
	}
}

func TestFromJD_RoundTrip(t *testing.T) {
	for _, kind := range []ephemeris.CalendarKind{ephemeris.Julian, ephemeris.Gregorian} {
		for jd := 1000000.5; jd < 2600000; jd += 12345.25 {
			y, m, d, h := julian.FromJD(jd, kind)
			assert.InDelta(t, jd, julian.ToJD(y, m, d, h, kind), 1e-6, "kind=%s jd=%v", kind, jd)
		}
	}
}

func TestFromJD_Fields(t *testing.T) {
	y, m, d, h := julian.FromJD(2459590.0, ephemeris.Gregorian)
	assert.Equal(t, 2022, y)
	assert.Equal(t, 1, m)
	assert.Equal(t, 10, d)
	assert.InDelta(t, 12, h, 1e-6)
}

func TestShift(t *testing.T) {
	local := ephemeris.DateTime{Year: 2022, Month: 1, Day: 1, Hour: 3, Minute: 30}
	utc := julian.Shift(local, 8)
	assert.Equal(t, 2021, utc.Year)
	assert.Equal(t, 12, utc.Month)
	assert.Equal(t, 31, utc.Day)
	assert.Equal(t, 19, utc.Hour)
	assert.InDelta(t, 30*60, float64(utc.Minute)*60+utc.Second, 1e-3)

	back := julian.Shift(utc, -8)
	assert.Equal(t, 2022, back.Year)
	assert.Equal(t, 1, back.Day)
	assert.InDelta(t, 3.5, back.HourFraction(), 1e-6)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, julian.Validate(2020, 2, 29, 0, ephemeris.Gregorian))
	assert.NoError(t, julian.Validate(1500, 2, 29, 0, ephemeris.Julian))
	assert.NoError(t, julian.Validate(2021, 4, 30, 23.99, ephemeris.Gregorian))

	for _, tc := range [][3]int{{2023, 2, 29}, {2021, 4, 31}, {1900, 2, 29}, {2021, 6, 31}} {
		err := julian.Validate(tc[0], tc[1], tc[2], 0, ephemeris.Gregorian)
		assert.ErrorIs(t, err, ephemeris.ErrInvalidDate, "%v", tc)
	}
	assert.ErrorIs(t, julian.Validate(2021, 1, 1, 24, ephemeris.Gregorian), ephemeris.ErrInvalidDate)
}

func TestTime(t *testing.T) {
	got := julian.Time(2451545.0)
	assert.Equal(t, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), got)

	// Far outside the range of time.Duration.
	old := julian.Time(julian.ToJD(1000, 3, 1, 6, ephemeris.Gregorian))
	assert.WithinDuration(t, time.Date(1000, 3, 1, 6, 0, 0, 0, time.UTC), old, time.Millisecond)

	now := time.Date(2022, 3, 10, 3, 5, 3, 0, time.UTC)
	require.WithinDuration(t, now, julian.Time(julian.FromTime(now)), time.Millisecond)
}

func TestFromJD_AcrossReform(t *testing.T) {
	// Julian 1500-03-01 is Gregorian 1500-03-11.
	jd := julian.ToJD(1500, 3, 1, 12, ephemeris.Julian)
	y, m, d, h := julian.FromJD(jd, ephemeris.Gregorian)
	assert.Equal(t, []int{1500, 3, 11}, []int{y, m, d})
	assert.InDelta(t, 12, h, 1e-6)
	assert.Equal(t, time.Date(1500, 3, 11, 12, 0, 0, 0, time.UTC), julian.Time(jd))

	// Gregorian 2000-01-01 is Julian 1999-12-19.
	y, m, d, _ = julian.FromJD(2451545.0, ephemeris.Julian)
	assert.Equal(t, []int{1999, 12, 19}, []int{y, m, d})

	// 1700-02-29 exists only in the Julian calendar.
	assert.NoError(t, julian.Validate(1700, 2, 29, 0, ephemeris.Julian))
	assert.ErrorIs(t, julian.Validate(1700, 2, 29, 0, ephemeris.Gregorian), ephemeris.ErrInvalidDate)
}

func TestTime_NegativeYears(t *testing.T) {
	jd := julian.ToJD(-100, 3, 1, 0, ephemeris.Gregorian)
	assert.Equal(t, time.Date(-100, 3, 1, 0, 0, 0, 0, time.UTC), julian.Time(jd))
	assert.InDelta(t, jd, julian.FromTime(julian.Time(jd)), 1e-6)

	y, m, d, _ := julian.FromJD(julian.ToJD(-1000, 7, 12, 12, ephemeris.Julian), ephemeris.Julian)
	assert.Equal(t, []int{-1000, 7, 12}, []int{y, m, d})
}
