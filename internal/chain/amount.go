package chain

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// MistDecimals is the scale between SUI and its smallest unit.
const MistDecimals = 9

var ErrAmountOutOfRange = errors.New("amount is not a finite value in the u64 MIST range")

// ToMist converts a SUI amount to MIST, truncating any fraction below one MIST.
// Amounts that are negative, not finite, or above math.MaxUint64 MIST are rejected.
func ToMist(amount float64) (uint64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, ErrAmountOutOfRange
	}
	mist := decimal.NewFromFloat(amount).Shift(MistDecimals).BigInt()
	if !mist.IsUint64() {
		return 0, ErrAmountOutOfRange
	}
	return mist.Uint64(), nil
}

