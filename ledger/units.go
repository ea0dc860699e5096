package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// ToLedgerUnits converts a YD token amount to the 18-decimal integer the
// contracts expect. Amounts that are zero or negative are rejected before
// anything is submitted.
func ToLedgerUnits(amount float64) (*big.Int, error) {
	if amount <= 0 {
		return nil, ErrInvalidPrice
	}
	f := new(big.Float).SetPrec(128).SetFloat64(amount)
	f.Mul(f, new(big.Float).SetPrec(128).SetInt(big.NewInt(params.Ether)))
	units, _ := f.Int(nil)
	return units, nil
}

func FromLedgerUnits(units *big.Int) float64 {
	if units == nil || units.Sign() == 0 {
		return 0
	}
	f := new(big.Float).SetPrec(128).SetInt(units)
	f.Quo(f, new(big.Float).SetPrec(128).SetInt(big.NewInt(params.Ether)))
	amount, _ := f.Float64()
	return amount
}
