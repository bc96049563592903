package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/tartampluch/go-lunarcal/internal/config"
	"github.com/tartampluch/go-lunarcal/internal/lunar"
)

// ChinaStandardTime is the fixed UTC+8 zone the calendar is defined in.
var ChinaStandardTime = time.FixedZone(config.ChinaStandardTimeName, lunar.TimezoneOffset*60*60)

// Request names one civil instant at UTC+8. The zero Request means "now".
type Request struct {
	Year   int `json:"year" yaml:"year"`
	Month  int `json:"month" yaml:"month"`
	Day    int `json:"day" yaml:"day"`
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
	Second int `json:"second" yaml:"second"`
}

// IsZero reports whether r is the "now" request.
func (r Request) IsZero() bool {
	return r == Request{}
}

func (r Request) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", r.Year, r.Month, r.Day, r.Hour, r.Minute, r.Second)
}

// RequestAt returns the UTC+8 fields of t.
func RequestAt(t time.Time) Request {
	t = t.In(ChinaStandardTime)
	return Request{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Signed years of any width, which time.Parse cannot read.
var requestPattern = regexp.MustCompile(`^([+-]?\d{1,6})-(\d{2})-(\d{2})(?:[T ](\d{2}):(\d{2})(?::(\d{2}))?)?$`)

// ParseRequest reads YYYY-MM-DD or YYYY-MM-DDTHH:MM[:SS]. Range checks are
// left to the conversion.
func ParseRequest(value string) (Request, error) {
	m := requestPattern.FindStringSubmatch(value)
	if m == nil {
		return Request{}, fmt.Errorf("%s: %q (want %s or %s)", config.ErrDateParse, value, config.InputDate, config.InputDateTime)
	}

	fields := make([]int, 6)
	for i, s := range m[1:] {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return Request{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
		}
		fields[i] = n
	}
	r := Request{Year: fields[0], Month: fields[1], Day: fields[2], Hour: fields[3], Minute: fields[4], Second: fields[5]}
	if r.IsZero() {
		return Request{}, errors.New(config.ErrDateParse)
	}
	return r, nil
}
