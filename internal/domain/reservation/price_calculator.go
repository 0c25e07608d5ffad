package reservation

import "github.com/shopspring/decimal"

type PriceCalculator interface {
	TotalPrice(numPeople int) Money
}

// TieredPriceCalculator charges per person, with a discount once the
// group is large enough: up to 3 people pay the small-group rate, 4 or
// more pay the large-group rate.
type TieredPriceCalculator struct {
	smallGroupRate decimal.Decimal
	largeGroupRate decimal.Decimal
	threshold      int
}

func NewTieredPriceCalculator() *TieredPriceCalculator {
	return &TieredPriceCalculator{
		smallGroupRate: decimal.NewFromFloat(30.00),
		largeGroupRate: decimal.NewFromFloat(25.00),
		threshold:      4,
	}
}

func NewTieredPriceCalculatorWithRates(small, large decimal.Decimal, threshold int) *TieredPriceCalculator {
	return &TieredPriceCalculator{
		smallGroupRate: small,
		largeGroupRate: large,
		threshold:      threshold,
	}
}

func (pc *TieredPriceCalculator) TotalPrice(numPeople int) Money {
	rate := pc.smallGroupRate
	if numPeople >= pc.threshold {
		rate = pc.largeGroupRate
	}
	return MustMoney(rate.Mul(decimal.NewFromInt(int64(numPeople))))
}
