package domain

import "github.com/shopspring/decimal"

// Amounts are held in integer paise so repeated summation stays exact. The
// upstream API speaks whole-rupee numbers; conversion happens only at that
// boundary and at display time.

// CODSurchargePaise is the fixed cash-on-delivery charge (50 rupees).
const CODSurchargePaise int64 = 50 * 100

// PaiseFromRupees converts an upstream rupee amount to paise without
// accumulating binary float error.
func PaiseFromRupees(rupees float64) int64 {
	return decimal.NewFromFloat(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// RupeesFromPaise converts paise back to a display rupee amount.
func RupeesFromPaise(paise int64) float64 {
	f, _ := decimal.NewFromInt(paise).Div(decimal.NewFromInt(100)).Float64()
	return f
}
