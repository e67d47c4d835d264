package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"truncates not rounds", 1.239, 1.23},
		{"two decimals unchanged", 42.50, 42.50},
		{"integer unchanged", 100, 100},
		{"zero", 0, 0},
		{"sub-cent truncated to zero", 0.009, 0},
		{"long fraction", 99.999, 99.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAmount(tt.input))
		})
	}
}

func TestNormalizeAmountNeverIncreases(t *testing.T) {
	values := []float64{0.01, 1.239, 7.777, 123.456, 100000.009}
	for _, v := range values {
		assert.LessOrEqual(t, NormalizeAmount(v), v)
	}
}

func TestLoanTotalDue(t *testing.T) {
	loan := &LoanRecord{Amount: 100, Interest: LoanInterestRate}
	assert.Equal(t, 110.0, loan.TotalDue())

	// Interest on odd amounts still truncates to 2 decimals.
	loan = &LoanRecord{Amount: 33.33, Interest: LoanInterestRate}
	assert.Equal(t, 36.66, loan.TotalDue())
}
