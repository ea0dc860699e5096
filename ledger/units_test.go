package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLedgerUnits(t *testing.T) {
	units, err := ToLedgerUnits(1)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", units.String())

	units, err = ToLedgerUnits(99.5)
	require.NoError(t, err)
	assert.Equal(t, "99500000000000000000", units.String())
}

func TestToLedgerUnitsRejectsNonPositive(t *testing.T) {
	_, err := ToLedgerUnits(0)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = ToLedgerUnits(-5)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestFromLedgerUnits(t *testing.T) {
	units, ok := new(big.Int).SetString("2500000000000000000", 10)
	require.True(t, ok)
	assert.InDelta(t, 2.5, FromLedgerUnits(units), 1e-9)

	assert.Zero(t, FromLedgerUnits(nil))
	assert.Zero(t, FromLedgerUnits(big.NewInt(0)))
}

func TestLedgerUnitsRoundTrip(t *testing.T) {
	for _, amount := range []float64{0.01, 1, 42.42, 100, 1999.99} {
		units, err := ToLedgerUnits(amount)
		require.NoError(t, err)
		assert.InDelta(t, amount, FromLedgerUnits(units), 1e-9)
	}
}
