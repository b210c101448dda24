package utils

import "github.com/shopspring/decimal"

// RoundWithTwoDecimalPlace arredonda valores monetários em centavos, meio para longe do zero
func RoundWithTwoDecimalPlace(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
