package fare_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/urbanrail/metrofare/fare"
)

// TestStandardTariff pins the documented fare formula:
// price = 2.00 + hops × 2.00.
func TestStandardTariff(t *testing.T) {
	calc := fare.Standard()

	price, err := calc.Price(0)
	require.NoError(t, err)
	require.Equal(t, "2.00", price.StringFixed(2))

	price, err = calc.Price(3)
	require.NoError(t, err)
	require.Equal(t, "8.00", price.StringFixed(2))

	price, err = calc.Price(4)
	require.NoError(t, err)
	require.Equal(t, "10.00", price.StringFixed(2))
}

// TestCustomTariff verifies an arbitrary exact-decimal tariff; the
// fractional per-hop increment must not pick up float rounding.
func TestCustomTariff(t *testing.T) {
	base, err := decimal.NewFromString("1.50")
	require.NoError(t, err)
	perHop, err := decimal.NewFromString("0.10")
	require.NoError(t, err)

	calc := fare.New(base, perHop)
	price, err := calc.Price(3)
	require.NoError(t, err)
	require.Equal(t, "1.80", price.StringFixed(2))
}

// TestNegativeHops is rejected.
func TestNegativeHops(t *testing.T) {
	_, err := fare.Standard().Price(-1)
	require.ErrorIs(t, err, fare.ErrNegativeHops)
}
