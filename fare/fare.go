package fare

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNegativeHops is returned when a negative hop count is priced.
var ErrNegativeHops = errors.New("fare: negative hop count")

// Standard tariff parameters, in exact currency units.
var (
	// StandardBase is the flat component of every fare.
	StandardBase = decimal.NewFromInt(2)

	// StandardPerHop is charged once per hop.
	StandardPerHop = decimal.NewFromInt(2)
)

// Calculator prices trips with a fixed base fare plus a fixed per-hop
// increment. The zero value prices everything at 0; use Standard or
// New.
type Calculator struct {
	base   decimal.Decimal
	perHop decimal.Decimal
}

// New returns a Calculator with the given tariff.
func New(base, perHop decimal.Decimal) Calculator {
	return Calculator{base: base, perHop: perHop}
}

// Standard returns the standard tariff: base 2.00, 2.00 per hop.
func Standard() Calculator {
	return New(StandardBase, StandardPerHop)
}

// Price returns base + hops × perHop.
func (c Calculator) Price(hops int) (decimal.Decimal, error) {
	if hops < 0 {
		return decimal.Decimal{}, ErrNegativeHops
	}

	return c.base.Add(c.perHop.Mul(decimal.NewFromInt(int64(hops)))), nil
}
