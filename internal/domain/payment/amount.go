package payment

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount is not convertible to minor units")

// ToMinorUnits converts a delivered decimal string into integer minor units.
// scale is the number of decimal places one major unit is split into.
func ToMinorUnits(raw string, scale int32) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidAmount
	}
	shifted := d.Shift(scale)
	if shifted.IsNegative() || !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrInvalidAmount
	}
	if !shifted.BigInt().IsInt64() {
		return 0, ErrInvalidAmount
	}
	return shifted.IntPart(), nil
}
