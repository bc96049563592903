package lunar

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-lunarcal/internal/ganzhi"
	"github.com/tartampluch/go-lunarcal/internal/julian"
)

// SolarTerm is a named solar-term instant with its civil fields at UTC+8.
type SolarTerm struct {
	Name   string `json:"name" yaml:"name"`
	Year   int    `json:"year" yaml:"year"`
	Month  int    `json:"month" yaml:"month"`
	Day    int    `json:"day" yaml:"day"`
	Hour   int    `json:"hour" yaml:"hour"`
	Minute int    `json:"minute" yaml:"minute"`
	Second int    `json:"second" yaml:"second"`

	// JulianDay is the instant in UT.
	JulianDay float64 `json:"julian_day" yaml:"julian_day"`
}

// Time returns the instant as a UTC time.
func (t SolarTerm) Time() time.Time {
	return julian.Time(t.JulianDay)
}

func (t SolarTerm) String() string {
	return fmt.Sprintf("%s %04d-%02d-%02d %02d:%02d:%02d", t.Name, t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}

// Result is the lunisolar rendering of one civil instant.
type Result struct {
	// LeapYear is set when the lunar months computed for the query hold a leap month.
	LeapYear bool `json:"leap_year" yaml:"leap_year"`

	LunarYear        ganzhi.GanZhi `json:"lunar_year" yaml:"lunar_year"`
	LunarMonth       string        `json:"lunar_month" yaml:"lunar_month"`
	LunarDay         string        `json:"lunar_day" yaml:"lunar_day"`
	LunarMonthNumber int           `json:"lunar_month_number" yaml:"lunar_month_number"`
	LunarDayNumber   int           `json:"lunar_day_number" yaml:"lunar_day_number"`
	IsLeapMonth      bool          `json:"is_leap_month" yaml:"is_leap_month"`

	// Labels of the solar (节气) calendar.
	YearGanZhi  ganzhi.GanZhi `json:"year_ganzhi" yaml:"year_ganzhi"`
	MonthGanZhi ganzhi.GanZhi `json:"month_ganzhi" yaml:"month_ganzhi"`
	DayGanZhi   ganzhi.GanZhi `json:"day_ganzhi" yaml:"day_ganzhi"`
	HourGanZhi  ganzhi.GanZhi `json:"hour_ganzhi" yaml:"hour_ganzhi"`

	// SectionalTerm (节) opens the solar month, MidTerm (中气) sits 15° later.
	SectionalTerm SolarTerm `json:"sectional_term" yaml:"sectional_term"`
	MidTerm       SolarTerm `json:"mid_term" yaml:"mid_term"`

	// JulianDay is the query instant in UT.
	JulianDay float64 `json:"julian_day" yaml:"julian_day"`
}
