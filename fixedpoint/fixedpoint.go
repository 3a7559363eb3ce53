// Package fixedpoint implements the checked, fixed-point integer arithmetic
// used throughout the governance engine to express ratios (confidence,
// support percentages, compensation fees) without floating point.
package fixedpoint

import (
	"errors"
	"math/big"
)

// PrecisionMultiplier is the fixed-point scale applied to ratios such as
// confidence and the compensation fee cap. 100% is PCTBase, not
// PrecisionMultiplier — the two scales serve different quantities and must
// not be confused (see PCTBase).
var PrecisionMultiplier = big.NewInt(10_000_000_000_000_000) // 10^16

// PCTBase is the scale used to express percentages supplied at
// configuration time (support_pct): 100% == PCTBase.
var PCTBase = new(big.Int).Mul(big.NewInt(100), PrecisionMultiplier) // 10^18

// ErrOverflow is returned when a checked operation would overflow, underflow,
// or divide by zero. Per spec it is a fatal condition: callers must abort the
// enclosing operation and must never retry or silently recover from it.
var ErrOverflow = errors.New("fixedpoint: arithmetic overflow")

// Add returns a+b, checked for negative operands (the engine never deals in
// signed quantities once past input validation).
func Add(a, b *big.Int) (*big.Int, error) {
	if a.Sign() < 0 || b.Sign() < 0 {
		return nil, ErrOverflow
	}
	return new(big.Int).Add(a, b), nil
}

// Sub returns a-b, failing on underflow.
func Sub(a, b *big.Int) (*big.Int, error) {
	if a.Sign() < 0 || b.Sign() < 0 {
		return nil, ErrOverflow
	}
	if a.Cmp(b) < 0 {
		return nil, ErrOverflow
	}
	return new(big.Int).Sub(a, b), nil
}

// MulDiv computes a*b/c using a widening big.Int multiply so the
// intermediate product never overflows, with integer floor division.
func MulDiv(a, b, c *big.Int) (*big.Int, error) {
	if a.Sign() < 0 || b.Sign() < 0 || c.Sign() < 0 {
		return nil, ErrOverflow
	}
	if c.Sign() == 0 {
		return nil, ErrOverflow
	}
	product := new(big.Int).Mul(a, b)
	return new(big.Int).Div(product, c), nil
}

// Confidence computes upstake*PrecisionMultiplier/max(downstake,1), the
// fixed-point upstake:downstake ratio used to drive Pended/Unpended
// transitions.
func Confidence(upstake, downstake *big.Int) (*big.Int, error) {
	denom := downstake
	if denom.Sign() == 0 {
		denom = big.NewInt(1)
	}
	return MulDiv(upstake, PrecisionMultiplier, denom)
}

// Threshold computes confidenceThresholdBase*PrecisionMultiplier.
func Threshold(confidenceThresholdBase *big.Int) *big.Int {
	return new(big.Int).Mul(confidenceThresholdBase, PrecisionMultiplier)
}

// MeetsSupport reports whether yea constitutes an absolute majority of
// yea+nay at the configured support percentage, i.e. whether
//
//	yea*PrecisionMultiplier >= supportPct*(yea+nay)*PrecisionMultiplier/PCTBase
//
// computed by cross-multiplication (yea*PCTBase >= supportPct*(yea+nay)) so
// the comparison never loses precision to an intermediate floor division.
func MeetsSupport(yea, nay, supportPct *big.Int) bool {
	total := new(big.Int).Add(yea, nay)
	if total.Sign() == 0 {
		return false
	}
	lhs := new(big.Int).Mul(yea, PCTBase)
	rhs := new(big.Int).Mul(supportPct, total)
	return lhs.Cmp(rhs) >= 0
}
