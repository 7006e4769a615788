// Package fare prices trips from their hop count.
//
// The tariff is deliberately hop-based, not distance-based, matching
// the hop-count routing metric: price = Base + hops × PerHop. The
// standard tariff charges 2.00 currency units plus 2.00 per hop.
//
// All amounts are shopspring/decimal values; the package never touches
// binary floating point, so no rounding leaks into ticket prices.
package fare
