package money

import "github.com/shopspring/decimal"

// Round rounds an amount to paise (2 decimal places, half away from zero)
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal is quantity × unit price rounded to 2 decimals
func LineTotal(quantity, pricePerUnit decimal.Decimal) decimal.Decimal {
	return Round(quantity.Mul(pricePerUnit))
}

// ClampZero floors d at zero
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds up values
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
