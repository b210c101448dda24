package utils

import (
	"github.com/shopspring/decimal"
)

const (
	crore = 10000000
	lakh  = 100000
)

var (
	croreDivisor    = decimal.NewFromInt(crore)
	lakhDivisor     = decimal.NewFromInt(lakh)
	thousandDivisor = decimal.NewFromInt(1000)
)

// FormatCompactINR formata valores em rupias no padrão compacto do dashboard:
// ₹X.XXCr a partir de 1 crore, ₹X.XL a partir de 1 lakh e ₹XK (inteiro) abaixo disso.
func FormatCompactINR(value float64) string {
	return formatCompactINR(value, 0)
}

// FormatCompactINROneDecimalK é a variante usada pelo planejador, que mantém uma casa decimal na faixa K
func FormatCompactINROneDecimalK(value float64) string {
	return formatCompactINR(value, 1)
}

// formatCompactINR arredonda meio para longe do zero, como o toFixed das telas
func formatCompactINR(value float64, thousandPlaces int32) string {
	amount := decimal.NewFromFloat(value)

	switch {
	case value >= crore:
		return "₹" + amount.Div(croreDivisor).StringFixed(2) + "Cr"
	case value >= lakh:
		return "₹" + amount.Div(lakhDivisor).StringFixed(1) + "L"
	default:
		return "₹" + amount.Div(thousandDivisor).StringFixed(thousandPlaces) + "K"
	}
}
