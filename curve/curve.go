// Package curve evaluates the reward curves a pool can be configured with.
package curve

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind names a curve family. The set is closed: adding one means extending
// Parse and Evaluate.
type Kind string

const (
	Power Kind = "power"
)

const (
	// Precision is the number of decimal places every evaluation is truncated to.
	Precision = 10

	workPrecision  = 20
	roundPrecision = 16
)

type Curve struct {
	Kind      Kind
	Parameter decimal.Decimal
}

func Parse(kind, parameter string) (Curve, error) {
	switch Kind(kind) {
	case Power:
	default:
		return Curve{}, fmt.Errorf("unknown curve %q", kind)
	}
	p, err := decimal.NewFromString(parameter)
	if err != nil {
		return Curve{}, fmt.Errorf("invalid curve parameter %q", parameter)
	}
	return Curve{Kind: Kind(kind), Parameter: p}, nil
}

func (c Curve) Evaluate(x decimal.Decimal) decimal.Decimal {
	return Evaluate(c.Kind, c.Parameter, x)
}

// Evaluate returns f(x) truncated to Precision places. Non-positive x and
// unknown kinds yield zero.
func Evaluate(kind Kind, parameter, x decimal.Decimal) decimal.Decimal {
	if x.Sign() <= 0 {
		return decimal.Zero
	}
	switch kind {
	case Power:
		return power(x, parameter)
	}
	return decimal.Zero
}

func power(x, p decimal.Decimal) decimal.Decimal {
	if p.IsInteger() && p.Sign() >= 0 {
		v, err := x.PowInt32(int32(p.IntPart()))
		if err != nil {
			return decimal.Zero
		}
		return v.Truncate(Precision)
	}
	v, err := x.PowWithPrecision(p, workPrecision)
	if err != nil {
		return decimal.Zero
	}
	// exact results such as 100^0.5 come back as 9.999...; settle them before truncating
	return v.Round(roundPrecision).Truncate(Precision)
}
