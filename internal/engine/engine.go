package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-lunarcal/internal/config"
	"github.com/tartampluch/go-lunarcal/internal/lunar"
)

// Report is one conversion with its input.
type Report struct {
	Input      Request      `json:"input" yaml:"input"`
	Result     lunar.Result `json:"result" yaml:"result"`
	DurationMs int64        `json:"duration_ms" yaml:"duration_ms"`
}

// Generator is the core service running conversions.
type Generator struct {
	Clock  Clock           // Interface for time mocking.
	Opener EphemerisOpener // Acquires the ephemeris for each conversion.
}

// Convert runs one conversion. The ephemeris is opened for this call only.
func (g *Generator) Convert(ctx context.Context, req Request) (Report, error) {
	start := time.Now()
	if req.IsZero() {
		req = RequestAt(g.Clock.Now())
	}

	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDate, req.String(),
	)
	log.DebugContext(ctx, config.MsgConvertStart)

	// The computation itself cannot be interrupted.
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	eph, err := g.Opener.Open(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", config.ErrOpenEphemeris, err)
	}
	defer func() {
		if err := eph.Close(); err != nil {
			log.Warn(config.ErrCloseEphem, config.LogKeyError, err)
		}
	}()

	res, err := lunar.Convert(eph, req.Year, req.Month, req.Day, req.Hour, req.Minute, req.Second)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", config.ErrConversion, err)
	}

	rep := Report{Input: req, Result: res, DurationMs: time.Since(start).Milliseconds()}
	log.InfoContext(ctx, config.MsgConvertDone,
		config.LogKeyLunar, res.LunarYear.Name()+res.LunarMonth+res.LunarDay,
		config.LogKeyLeap, res.LeapYear,
		config.LogKeyDuration, rep.DurationMs,
	)
	return rep, nil
}
