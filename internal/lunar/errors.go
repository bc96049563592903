package lunar

import (
	"errors"

	"github.com/tartampluch/go-lunarcal/internal/ephemeris"
	"github.com/tartampluch/go-lunarcal/internal/rootfind"
)

var (
	// ErrInvalidInput reports civil fields that are out of range or name a date that does not exist.
	ErrInvalidInput = errors.New("invalid date-time")

	// ErrOutOfRange reports a query instant that falls outside the computed lunar months.
	ErrOutOfRange = errors.New("instant outside the computed lunar months")

	ErrConfiguration  = ephemeris.ErrConfiguration
	ErrQuery          = ephemeris.ErrQuery
	ErrNonConvergence = rootfind.ErrNonConvergence
)
