package pricefmt

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/faromarket/goapi/domain"
)

// native currency precision
const tokenDecimals = 18

// ToDisplay turns an integer smallest-unit value into the human decimal
// representation, e.g. 1500000000000000000 -> "1.5".
func ToDisplay(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -tokenDecimals).String()
}

// ToDisplayFromString parses a stored amount string and formats it for
// display. Unparseable amounts display as zero.
func ToDisplayFromString(s string) string {
	v, err := domain.ParseAmount(s)
	if err != nil {
		return "0"
	}
	return ToDisplay(v)
}
