package contract

import (
	"github.com/shopspring/decimal"
)

const (
	// SmtPrecision is the scale of rshares, curation weights and claims.
	SmtPrecision = 10
	MaxWeight    = 10000
	MaxPower     = 10000
	dayMs        = 24 * 60 * 60 * 1000
)

var (
	hundred = decimal.NewFromInt(100)
	maxBps  = decimal.NewFromInt(MaxWeight)
	bpsSqrd = decimal.NewFromInt(MaxWeight * MaxPower)
)

func amount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// divTrunc is a/b truncated toward zero at places decimals. b must not be zero.
func divTrunc(a, b decimal.Decimal, places int32) decimal.Decimal {
	q, _ := a.QuoRem(b, places)
	return q
}

func smt(d decimal.Decimal) string {
	return d.Truncate(SmtPrecision).StringFixed(SmtPrecision)
}

func quantity(d decimal.Decimal, precision int32) string {
	return d.Truncate(precision).StringFixed(precision)
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.Sign() < 0 {
		return decimal.Zero
	}
	return d
}

// decimalPlaces counts the digits after the point in a plain decimal string.
func decimalPlaces(d decimal.Decimal) int32 {
	if d.Exponent() >= 0 {
		return 0
	}
	return -d.Exponent()
}
