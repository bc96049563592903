package lunar

import (
	"fmt"

	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
)

// Validate checks civil fields at UTC+8 before any astronomy runs. Years
// are astronomical except that 0 is refused.
func Validate(eph ephemeris.Ephemeris, year, month, day, hour, minute, second int) error {
	switch {
	case year == 0:
		return fmt.Errorf("%w: year 0 does not exist", ErrInvalidInput)
	case month < 1 || month > 12:
		return fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	case day < 1 || day > 31:
		return fmt.Errorf("%w: day %d", ErrInvalidInput, day)
	case hour < 0 || hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidInput, hour)
	case minute < 0 || minute > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidInput, minute)
	case second < 0 || second > 59:
		return fmt.Errorf("%w: second %d", ErrInvalidInput, second)
	}

	if year == 1582 && month == 10 && day >= 5 && day <= 14 {
		return fmt.Errorf("%w: 1582-10-%02d falls in the Julian to Gregorian transition", ErrInvalidInput, day)
	}

	dt := ephemeris.DateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: float64(second)}
	if err := eph.ValidateDate(year, month, day, dt.HourFraction(), ephemeris.KindFor(year, month, day)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
