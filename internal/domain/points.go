package domain

import "github.com/shopspring/decimal"

// Points balances carry one fractional digit everywhere.
const PointsScale = 1

var weightDivisor = decimal.NewFromInt(10)

// Round1 normalizes a points quantity to one decimal place.
func Round1(d decimal.Decimal) decimal.Decimal {
	return d.Round(PointsScale)
}

// PointsFromWeight converts a weight in grams to a points delta at the
// fixed 10:1 ratio, rounded to one decimal place.
func PointsFromWeight(grams decimal.Decimal) decimal.Decimal {
	return Round1(grams.Div(weightDivisor))
}
