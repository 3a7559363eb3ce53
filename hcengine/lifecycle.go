package hcengine

import (
	"time"

	"hcgov/crypto"
	"hcgov/hcerrors"
	"hcgov/observability/logging"
	"hcgov/store"
)

// BoostProposal implements spec.md §4.F's boost_proposal poke: promotes a
// Pended proposal that has dwelt there for at least pended_boost_period to
// Boosted, paying the caller a compensation fee from the engine's stake
// custody balance.
func (e *Engine) BoostProposal(caller crypto.Address, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if p.State != store.Pended {
		e.metrics.Poke("boost", false)
		return hcerrors.ErrProposalDoesNotHaveEnoughConfidence
	}
	cutoff := p.BoostEligibleAt(e.cfg.PendedBoostPeriod())
	now := e.now()
	if now.Before(cutoff) {
		e.metrics.Poke("boost", false)
		return hcerrors.ErrProposalHasntHadConfidenceEnoughTime
	}

	fee, err := calcFee(p.Upstake, e.cfg.CompensationFeePct, int64(now.Sub(cutoff).Seconds()))
	if err != nil {
		e.metrics.Poke("boost", false)
		return err
	}
	if e.stakeToken.BalanceOf(e.stakeToken.CustodyAddress()).Cmp(fee) < 0 {
		e.metrics.Poke("boost", false)
		return hcerrors.ErrSenderDoesNotHaveEnoughFunds
	}

	p.Lifetime = e.cfg.BoostPeriod()
	p.LastPendedDate = time.Time{}
	e.setState(p, store.Boosted)

	if fee.Sign() > 0 {
		if err := e.stakeToken.Transfer(caller, fee); err != nil {
			return err
		}
	}
	e.metrics.CompensationFeePaid(weiFloat(fee))
	e.metrics.Poke("boost", true)
	e.logger.Info("proposal boosted", "id", id, logging.MaskField("caller", caller.String()), "fee", fee.String())
	return nil
}

// ExpireNonBoosted implements spec.md §4.F's expire_non_boosted poke: any
// non-terminal, non-Boosted proposal whose queue deadline has passed
// expires, paying the caller a compensation fee.
func (e *Engine) ExpireNonBoosted(caller crypto.Address, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if p.State == store.Boosted || p.State.Terminal() {
		e.metrics.Poke("expire", false)
		return hcerrors.ErrProposalIsBoosted
	}
	deadline := p.Deadline()
	now := e.now()
	if now.Before(deadline) {
		e.metrics.Poke("expire", false)
		return hcerrors.ErrProposalIsActive
	}

	fee, err := calcFee(p.Upstake, e.cfg.CompensationFeePct, int64(now.Sub(deadline).Seconds()))
	if err != nil {
		e.metrics.Poke("expire", false)
		return err
	}
	if e.stakeToken.BalanceOf(e.stakeToken.CustodyAddress()).Cmp(fee) < 0 {
		e.metrics.Poke("expire", false)
		return hcerrors.ErrSenderDoesNotHaveEnoughFunds
	}

	e.setState(p, store.Expired)

	if fee.Sign() > 0 {
		if err := e.stakeToken.Transfer(caller, fee); err != nil {
			return err
		}
	}
	e.metrics.CompensationFeePaid(weiFloat(fee))
	e.metrics.Poke("expire", true)
	e.logger.Info("proposal expired", "id", id, logging.MaskField("caller", caller.String()), "fee", fee.String())
	return nil
}

// ResolveBoosted implements spec.md §4.F's resolve_boosted poke: a Boosted
// proposal past its (boost-period) deadline resolves, paying the caller a
// compensation fee. Implemented fully per the Open Question guidance — the
// source's commented-out fee payout and state transition are the intended
// behavior, specified here by symmetry with expire_non_boosted.
func (e *Engine) ResolveBoosted(caller crypto.Address, id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if p.State != store.Boosted {
		e.metrics.Poke("resolve", false)
		return hcerrors.ErrProposalIsNotBoosted
	}
	deadline := p.Deadline()
	now := e.now()
	if now.Before(deadline) {
		e.metrics.Poke("resolve", false)
		return hcerrors.ErrProposalIsActive
	}

	fee, err := calcFee(p.Upstake, e.cfg.CompensationFeePct, int64(now.Sub(deadline).Seconds()))
	if err != nil {
		e.metrics.Poke("resolve", false)
		return err
	}
	if e.stakeToken.BalanceOf(e.stakeToken.CustodyAddress()).Cmp(fee) < 0 {
		e.metrics.Poke("resolve", false)
		return hcerrors.ErrSenderDoesNotHaveEnoughFunds
	}

	e.setState(p, store.Resolved)

	if fee.Sign() > 0 {
		if err := e.stakeToken.Transfer(caller, fee); err != nil {
			return err
		}
	}
	e.metrics.CompensationFeePaid(weiFloat(fee))
	e.metrics.Poke("resolve", true)
	e.logger.Info("proposal resolved", "id", id, logging.MaskField("caller", caller.String()), "fee", fee.String())
	return nil
}
