package engine

import (
	"context"

	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/ephemeris/swiss"
	"github.com/tartampluch/go-lunarcal/internal/lunar"
)

// EphemerisOpener acquires an ephemeris for one conversion. The Generator
// closes what it opens.
type EphemerisOpener interface {
	Open(ctx context.Context) (ephemeris.Ephemeris, error)
}

// SwissOpener opens Swiss Ephemeris adapters.
type SwissOpener struct {
	Path    string
	Moshier bool
}

func (o SwissOpener) Open(ctx context.Context) (ephemeris.Ephemeris, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var opts []swiss.Option
	if o.Moshier {
		opts = append(opts, swiss.WithMoshier())
	}
	return swiss.New(o.Path, opts...)
}

// ComputeLunarCalendar converts one civil instant at UTC+8 using the Swiss
// Ephemeris files under ephePath, releasing them before it returns.
func ComputeLunarCalendar(year, month, day, hour, minute, second int, ephePath string) (result lunar.Result, err error) {
	eph, err := swiss.New(ephePath)
	if err != nil {
		return lunar.Result{}, err
	}
	defer func() {
		if cerr := eph.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return lunar.Convert(eph, year, month, day, hour, minute, second)
}
