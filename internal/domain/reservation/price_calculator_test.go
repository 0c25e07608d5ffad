//go:build unit

package reservation_test

import (
	"testing"

	"escape-rooms-backend/internal/domain/reservation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTieredPriceCalculator(t *testing.T) {
	calc := reservation.NewTieredPriceCalculator()

	tests := []struct {
		name      string
		numPeople int
		want      string
	}{
		{name: "1人は通常単価", numPeople: 1, want: "30.00"},
		{name: "3人は通常単価", numPeople: 3, want: "90.00"},
		{name: "4人から割引単価", numPeople: 4, want: "100.00"},
		{name: "10人も割引単価", numPeople: 10, want: "250.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.TotalPrice(tt.numPeople)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTieredPriceCalculatorWithRates(t *testing.T) {
	calc := reservation.NewTieredPriceCalculatorWithRates(
		decimal.NewFromInt(40), decimal.NewFromInt(35), 6,
	)

	assert.Equal(t, "200.00", calc.TotalPrice(5).String())
	assert.Equal(t, "210.00", calc.TotalPrice(6).String())
}
