package hcengine

import (
	"math/big"
	"time"

	"hcgov/crypto"
	"hcgov/fixedpoint"
	"hcgov/hcerrors"
	"hcgov/store"
)

// Stake implements spec.md §4.E: transfers amount from caller to the
// engine's stake custody account, credits the caller's upstake or downstake
// sub-ledger, and reassesses confidence.
func (e *Engine) Stake(caller crypto.Address, id uint64, amount *big.Int, supports bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return hcerrors.ErrInvalidAmount
	}
	p, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if p.State.Terminal() {
		return hcerrors.ErrProposalIsClosed
	}
	if e.stakeToken.BalanceOf(caller).Cmp(amount) < 0 {
		return hcerrors.ErrSenderDoesNotHaveEnoughFunds
	}
	if err := e.stakeToken.TransferFrom(caller, e.stakeToken.CustodyAddress(), amount); err != nil {
		return err
	}

	if supports {
		p.AddUpstake(caller, amount)
		p.Upstake.Add(p.Upstake, amount)
		e.emit(UpstakeProposal{ID: id, Staker: caller.String(), Amount: amount.String()})
		e.appendAudit(store.AuditEventUpstaked, id, caller, amount.String())
	} else {
		p.AddDownstake(caller, amount)
		p.Downstake.Add(p.Downstake, amount)
		e.emit(DownstakeProposal{ID: id, Staker: caller.String(), Amount: amount.String()})
		e.appendAudit(store.AuditEventDownstaked, id, caller, amount.String())
	}
	e.metrics.StakeDeposited(weiFloat(amount))

	e.reassessConfidence(p)
	e.persist(p)
	return nil
}

// Unstake implements spec.md §4.E: debits the caller's sub-ledger and
// transfers amount back from the engine's custody account, then
// reassesses confidence.
func (e *Engine) Unstake(caller crypto.Address, id uint64, amount *big.Int, supports bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return hcerrors.ErrInvalidAmount
	}
	p, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if p.State.Terminal() {
		return hcerrors.ErrProposalIsClosed
	}

	if supports {
		if p.UpstakeOf(caller).Cmp(amount) < 0 {
			return hcerrors.ErrSenderDoesNotHaveRequiredStake
		}
	} else {
		if p.DownstakeOf(caller).Cmp(amount) < 0 {
			return hcerrors.ErrSenderDoesNotHaveRequiredStake
		}
	}

	if supports {
		p.SubUpstake(caller, amount)
		p.Upstake.Sub(p.Upstake, amount)
	} else {
		p.SubDownstake(caller, amount)
		p.Downstake.Sub(p.Downstake, amount)
	}

	if err := e.stakeToken.Transfer(caller, amount); err != nil {
		if supports {
			p.AddUpstake(caller, amount)
			p.Upstake.Add(p.Upstake, amount)
		} else {
			p.AddDownstake(caller, amount)
			p.Downstake.Add(p.Downstake, amount)
		}
		return err
	}

	if supports {
		e.emit(WithdrawUpstake{ID: id, Staker: caller.String(), Amount: amount.String()})
		e.appendAudit(store.AuditEventUpstakeWithdrawn, id, caller, amount.String())
	} else {
		e.emit(WithdrawDownstake{ID: id, Staker: caller.String(), Amount: amount.String()})
		e.appendAudit(store.AuditEventDownstakeWithdrawn, id, caller, amount.String())
	}
	e.metrics.StakeWithdrawn(weiFloat(amount))

	e.reassessConfidence(p)
	e.persist(p)
	return nil
}

// reassessConfidence implements spec.md §4.E's Pended/Unpended transition
// rule. It is a no-op outside {Queued, Unpended, Pended}.
func (e *Engine) reassessConfidence(p *store.Proposal) {
	switch p.State {
	case store.Queued, store.Unpended, store.Pended:
	default:
		return
	}

	confidence, err := fixedpoint.Confidence(p.Upstake, p.Downstake)
	if err != nil {
		return
	}
	threshold := e.cfg.ConfidenceThreshold()

	switch {
	case confidence.Cmp(threshold) >= 0 && p.State != store.Pended:
		p.LastPendedDate = e.now()
		e.setState(p, store.Pended)
	case confidence.Cmp(threshold) < 0 && p.State == store.Pended:
		p.LastPendedDate = time.Time{}
		e.setState(p, store.Unpended)
	}
}

// weiFloat converts a wei-scale *big.Int amount to a float64 for Prometheus
// counters, which do not natively support arbitrary precision. Values this
// engine handles fit comfortably in a float64's mantissa for observability
// purposes; exact accounting always uses the big.Int fields directly.
func weiFloat(amount *big.Int) float64 {
	f := new(big.Float).SetInt(amount)
	out, _ := f.Float64()
	return out
}
