package swiss_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/ephemeris/swiss"
)

const j2000 = 2451545.0

func moshier(t *testing.T) *swiss.Ephemeris {
	t.Helper()
	eph, err := swiss.New(".", swiss.WithMoshier())
	require.NoError(t, err)
	t.Cleanup(func() { _ = eph.Close() })
	return eph
}

func TestNew_RequiresPath(t *testing.T) {
	for _, path := range []string{"", "   "} {
		_, err := swiss.New(path)
		assert.ErrorIs(t, err, ephemeris.ErrConfiguration)
	}

	eph, err := swiss.New("/usr/share/sweph")
	require.NoError(t, err)
	assert.Equal(t, "/usr/share/sweph", eph.Path())
}

func TestPosition_SunAndMoon(t *testing.T) {
	eph := moshier(t)

	sun, err := ephemeris.Longitude(eph, j2000, ephemeris.Sun)
	require.NoError(t, err)
	assert.InDelta(t, 280.37, sun, 0.05)

	moon, err := ephemeris.Longitude(eph, j2000, ephemeris.Moon)
	require.NoError(t, err)
	assert.InDelta(t, 223.3, moon, 1.0)
}

func TestPosition_ConcurrentAdapters(t *testing.T) {
	a := moshier(t)
	b, err := swiss.New(t.TempDir(), swiss.WithMoshier())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		eph := a
		if i%2 == 1 {
			eph = b
		}
		wg.Add(1)
		go func(jd float64) {
			defer wg.Done()
			_, err := eph.Position(jd, ephemeris.Sun)
			assert.NoError(t, err)
		}(j2000 + float64(i))
	}
	wg.Wait()
}

func TestDateConversions(t *testing.T) {
	eph := moshier(t)

	jd := eph.JulianDay(2000, 1, 1, 12, ephemeris.Gregorian)
	assert.InDelta(t, j2000, jd, 1e-9)

	y, m, d, hour := eph.CivilDate(jd, ephemeris.Gregorian)
	assert.Equal(t, []int{2000, 1, 1}, []int{y, m, d})
	assert.InDelta(t, 12, hour, 1e-6)

	// 1582-10-04 (Julian) is followed by 1582-10-15 (Gregorian).
	assert.InDelta(t, 1,
		eph.JulianDay(1582, 10, 15, 0, ephemeris.Gregorian)-eph.JulianDay(1582, 10, 4, 0, ephemeris.Julian), 1e-9)
}

func TestShiftUTCOffset(t *testing.T) {
	eph := moshier(t)

	utc := eph.ShiftUTCOffset(ephemeris.DateTime{Year: 2022, Month: 1, Day: 1, Hour: 3}, 8)
	assert.Equal(t, []int{2021, 12, 31, 19, 0}, []int{utc.Year, utc.Month, utc.Day, utc.Hour, utc.Minute})
	assert.InDelta(t, 0, utc.Second, 1e-3)

	local := eph.ShiftUTCOffset(utc, -8)
	assert.Equal(t, []int{2022, 1, 1}, []int{local.Year, local.Month, local.Day})
	assert.InDelta(t, 3, local.HourFraction(), 1e-6)
}

func TestValidateDate(t *testing.T) {
	eph := moshier(t)

	assert.NoError(t, eph.ValidateDate(2024, 2, 29, 0, ephemeris.Gregorian))
	assert.ErrorIs(t, eph.ValidateDate(2023, 2, 29, 0, ephemeris.Gregorian), ephemeris.ErrInvalidDate)
	assert.NoError(t, eph.ValidateDate(1500, 2, 29, 0, ephemeris.Julian))
	assert.ErrorIs(t, eph.ValidateDate(2022, 4, 31, 0, ephemeris.Gregorian), ephemeris.ErrInvalidDate)
}
