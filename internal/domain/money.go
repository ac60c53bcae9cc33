package domain

import "github.com/shopspring/decimal"

// RoundingUnit is the smallest denomination used when splitting dues.
// Shares are rounded to the nearest multiple of it; the sum never drifts
// because the last participant absorbs the remainder.
const RoundingUnit int64 = 100

// SplitEvenly splits total into n non-negative integer shares that sum
// exactly to total. The per-head share is total/n rounded half-up to the
// nearest RoundingUnit; the last share absorbs the rounding remainder.
// When rounding up would drive the last share negative, the per-head share
// steps down one unit until every share is non-negative.
func SplitEvenly(total int64, n int) ([]int64, error) {
	if n <= 0 || total < 0 {
		return nil, ErrInvalidInput
	}

	share := roundToUnit(total, int64(n))
	for share >= RoundingUnit && share*int64(n-1) > total {
		share -= RoundingUnit
	}

	shares := make([]int64, n)
	for i := 0; i < n-1; i++ {
		shares[i] = share
	}
	shares[n-1] = total - share*int64(n-1)

	return shares, nil
}

// roundToUnit returns total/n rounded half-up to the nearest RoundingUnit.
func roundToUnit(total, n int64) int64 {
	units := (2*total + RoundingUnit*n) / (2 * RoundingUnit * n)
	return units * RoundingUnit
}

// ServiceFee computes the checkout fee charged on top of netAmount:
// ceil((netAmount*feePercent + fixedFee) / unit) * unit. The fee is fixed
// at order creation and never recomputed from gateway notifications.
func ServiceFee(netAmount int64, feePercent decimal.Decimal, fixedFee, unit int64) int64 {
	raw := decimal.NewFromInt(netAmount).
		Mul(feePercent).
		Add(decimal.NewFromInt(fixedFee))

	units := raw.Div(decimal.NewFromInt(unit)).Ceil()

	return units.Mul(decimal.NewFromInt(unit)).IntPart()
}
