package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCompactINR(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "crore com duas casas", value: 12345678, expected: "₹1.23Cr"},
		{name: "limite exato de um crore", value: 10000000, expected: "₹1.00Cr"},
		{name: "lakh com uma casa", value: 250000, expected: "₹2.5L"},
		{name: "limite exato de um lakh", value: 100000, expected: "₹1.0L"},
		{name: "abaixo de um lakh", value: 99999, expected: "₹100K"},
		{name: "milhar arredondado para cima na metade", value: 4500, expected: "₹5K"},
		{name: "milhar arredondado para baixo", value: 4499, expected: "₹4K"},
		{name: "zero", value: 0, expected: "₹0K"},
		{name: "lakh arredondado na metade", value: 125000, expected: "₹1.3L"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCompactINR(tt.value))
		})
	}
}

// A faixa K tem duas regras diferentes nas telas; cada uma é fixada aqui
func TestFormatCompactINROneDecimalK(t *testing.T) {
	assert.Equal(t, "₹4.5K", FormatCompactINROneDecimalK(4500))
	assert.Equal(t, "₹0.8K", FormatCompactINROneDecimalK(750))
	assert.Equal(t, "₹2.5L", FormatCompactINROneDecimalK(250000))
	assert.Equal(t, "₹1.23Cr", FormatCompactINROneDecimalK(12345678))

	assert.NotEqual(t, FormatCompactINR(4500), FormatCompactINROneDecimalK(4500))
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 333333.33, RoundWithTwoDecimalPlace(1000000.0/3))
	assert.Equal(t, 1.01, RoundWithTwoDecimalPlace(1.005))
	assert.Equal(t, -2.5, RoundWithTwoDecimalPlace(-2.499))
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(ChannelSuffixSize)

	assert.NoError(t, err)
	assert.Regexp(t, `^[A-Za-z0-9]{6}$`, id)
}
