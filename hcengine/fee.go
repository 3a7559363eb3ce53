package hcengine

import (
	"math/big"

	"hcgov/fixedpoint"
	"hcgov/hcerrors"
)

// calcFee implements the compensation-fee formula of spec.md §4.F: the fee
// grows linearly with lateness, inversely with how heavily upstaked the
// proposal is, capped at upstake/compensationFeePct. An upstake of zero
// makes the cap zero and the fee undefined; calcFee fails rather than
// silently charging zero, per the spec's "choose the latter for symmetry"
// guidance.
func calcFee(upstake *big.Int, compensationFeePct uint64, elapsedSeconds int64) (*big.Int, error) {
	if upstake == nil || upstake.Sign() == 0 {
		return nil, hcerrors.ErrInvalidCompensationFee
	}
	if elapsedSeconds < 0 {
		return nil, hcerrors.ErrProposalIsActive
	}
	precision := fixedpoint.PrecisionMultiplier
	portion, err := fixedpoint.MulDiv(upstake, precision, new(big.Int).SetUint64(compensationFeePct))
	if err != nil {
		return nil, err
	}
	if portion.Sign() == 0 {
		return nil, hcerrors.ErrInvalidCompensationFee
	}
	elapsed := big.NewInt(elapsedSeconds)
	feeRaw, err := fixedpoint.MulDiv(elapsed, precision, portion)
	if err != nil {
		return nil, err
	}
	cap := new(big.Int).Div(portion, precision)
	if feeRaw.Cmp(cap) > 0 {
		return cap, nil
	}
	return feeRaw, nil
}
