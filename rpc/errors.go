package rpc

import (
	"errors"

	"hcgov/hcerrors"
)

// codeFor maps a sentinel from hcerrors to a stable JSON-RPC error code. Any
// error not in the taxonomy below is an internal server error: the engine
// never returns raw errors from ledger or store internals past this edge.
func codeFor(err error) int {
	switch {
	case errors.Is(err, hcerrors.ErrProposalDoesNotExist):
		return codeProposalNotFound
	case errors.Is(err, hcerrors.ErrProposalIsClosed):
		return codeProposalClosed
	case errors.Is(err, hcerrors.ErrProposalIsBoosted):
		return codeProposalBoosted
	case errors.Is(err, hcerrors.ErrProposalIsNotBoosted):
		return codeProposalNotBoosted
	case errors.Is(err, hcerrors.ErrProposalIsActive):
		return codeProposalStillActive
	case errors.Is(err, hcerrors.ErrProposalDoesNotHaveEnoughConfidence):
		return codeNotEnoughConfidence
	case errors.Is(err, hcerrors.ErrProposalHasntHadConfidenceEnoughTime):
		return codeConfidenceTooYoung
	case errors.Is(err, hcerrors.ErrUserHasNoVotingPower):
		return codeNoVotingPower
	case errors.Is(err, hcerrors.ErrSenderDoesNotHaveEnoughFunds):
		return codeInsufficientFunds
	case errors.Is(err, hcerrors.ErrSenderDoesNotHaveRequiredStake):
		return codeInsufficientStake
	case errors.Is(err, hcerrors.ErrInsufficientAllowance):
		return codeInsufficientAllow
	case errors.Is(err, hcerrors.ErrInvalidAmount):
		return codeInvalidAmount
	case errors.Is(err, hcerrors.ErrInvalidCompensationFee):
		return codeInvalidCompensation
	default:
		return codeServerError
	}
}
