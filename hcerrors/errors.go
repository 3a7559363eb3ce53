// Package hcerrors defines the finite tagged error variant the governance
// engine surfaces to callers, replacing the dynamic error strings of the
// contract this engine is modeled on with a closed set of sentinel errors.
// Edges (RPC, CLI) map a sentinel to a human string; nothing upstream of the
// edge ever stringifies an error for comparison.
package hcerrors

import "errors"

var (
	// ErrProposalDoesNotExist is returned when an operation names an unknown
	// proposal identifier.
	ErrProposalDoesNotExist = errors.New("hcgov: proposal does not exist")
	// ErrProposalIsClosed is returned when an operation targets a proposal
	// already in a terminal state (Resolved or Expired).
	ErrProposalIsClosed = errors.New("hcgov: proposal is closed")
	// ErrProposalIsBoosted is returned when an operation is invalid for a
	// proposal on the fast track; expireNonBoosted also returns it for a
	// proposal that is already Resolved or Expired.
	ErrProposalIsBoosted = errors.New("hcgov: proposal is boosted")
	// ErrProposalIsNotBoosted is returned when resolveBoosted targets a
	// proposal that is not currently in the Boosted state (including one
	// that was boosted and has since resolved).
	ErrProposalIsNotBoosted = errors.New("hcgov: proposal is not boosted")
	// ErrProposalIsActive is returned when expireNonBoosted is invoked before
	// the queue deadline has elapsed.
	ErrProposalIsActive = errors.New("hcgov: proposal is still active")
	// ErrProposalDoesNotHaveEnoughConfidence is returned by boostProposal when
	// the proposal is not currently Pended.
	ErrProposalDoesNotHaveEnoughConfidence = errors.New("hcgov: proposal does not have enough confidence")
	// ErrProposalHasntHadConfidenceEnoughTime is returned by boostProposal
	// before pended_boost_period has elapsed since last_pended_date.
	ErrProposalHasntHadConfidenceEnoughTime = errors.New("hcgov: proposal hasn't had confidence long enough")
	// ErrUserHasNoVotingPower is returned by vote when the caller's
	// voting-token balance is zero.
	ErrUserHasNoVotingPower = errors.New("hcgov: user has no voting power")
	// ErrSenderDoesNotHaveEnoughFunds is returned by stake when the caller's
	// stake-token balance is insufficient.
	ErrSenderDoesNotHaveEnoughFunds = errors.New("hcgov: sender does not have enough funds")
	// ErrInsufficientAllowance is returned by stake when the caller has not
	// approved the engine for the requested amount.
	ErrInsufficientAllowance = errors.New("hcgov: insufficient allowance")
	// ErrSenderDoesNotHaveRequiredStake is returned by unstake when the
	// caller's sub-ledger balance is smaller than the requested amount.
	ErrSenderDoesNotHaveRequiredStake = errors.New("hcgov: sender does not have the required stake")
	// ErrVotingDoesNotHaveEnoughFunds names a token-adapter transfer failure
	// on the vote-weight ledger. The engine only samples vote-token balances
	// and never transfers vote tokens, so no code path returns it.
	ErrVotingDoesNotHaveEnoughFunds = errors.New("hcgov: voting token transfer failed")
	// ErrInvalidCompensationFee is returned when a poke's compensation fee is
	// undefined (upstake == 0) rather than silently charged as zero.
	ErrInvalidCompensationFee = errors.New("hcgov: invalid compensation fee")
	// ErrInitSupportTooSmall is returned by init/config validation when
	// support_pct is below 50%.
	ErrInitSupportTooSmall = errors.New("hcgov: support percentage too small")
	// ErrInitSupportTooBig is returned by init/config validation when
	// support_pct is at or above 100%.
	ErrInitSupportTooBig = errors.New("hcgov: support percentage too big")
	// ErrArithmeticOverflow is the taxonomy's checked-arithmetic tag. The
	// fixedpoint package reports its failures as fixedpoint.ErrOverflow, not
	// as this sentinel, and no code path in this module returns it.
	ErrArithmeticOverflow = errors.New("hcgov: arithmetic overflow")
	// ErrStateNotConfigured names an engine invoked before its dependencies
	// (store, ledgers) are wired. NewEngine always installs a store and
	// takes both ledgers as arguments, so no code path returns it.
	ErrStateNotConfigured = errors.New("hcgov: engine not configured")
	// ErrInvalidAmount is returned when a caller-supplied amount is zero or
	// negative where a positive amount is required.
	ErrInvalidAmount = errors.New("hcgov: amount must be positive")
	// ErrInvalidConfig is returned by config validation for out-of-range
	// parameters not covered by a more specific sentinel above.
	ErrInvalidConfig = errors.New("hcgov: invalid configuration")
)
