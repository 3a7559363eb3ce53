package hcengine

import (
	"hcgov/crypto"
	"hcgov/fixedpoint"
	"hcgov/hcerrors"
	"hcgov/store"
)

// Vote implements spec.md §4.D: samples the caller's current voting-token
// balance, replaces any previously recorded choice (subtracting the
// previously recorded weight, not a freshly sampled balance — Open
// Question "vote-weight revision", option (a)), and checks for
// absolute-majority resolution.
func (e *Engine) Vote(caller crypto.Address, id uint64, supports bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if !voteable(p.State) {
		return hcerrors.ErrProposalIsClosed
	}

	weight := e.voteToken.BalanceOf(caller)
	if weight.Sign() <= 0 {
		return hcerrors.ErrUserHasNoVotingPower
	}

	prior := p.VoteOf(caller)
	switch prior.Choice {
	case store.Yea:
		p.Yea.Sub(p.Yea, prior.Weight)
	case store.Nay:
		p.Nay.Sub(p.Nay, prior.Weight)
	}

	choice := store.Nay
	if supports {
		choice = store.Yea
		p.Yea.Add(p.Yea, weight)
	} else {
		p.Nay.Add(p.Nay, weight)
	}
	p.SetVote(caller, store.VoteRecord{Choice: choice, Weight: weight})

	e.metrics.VoteCast()
	e.emit(VoteCasted{ID: id, Voter: caller.String(), Supports: supports, Weight: weight.String()})
	e.appendAudit(store.AuditEventVoteCast, id, caller, choice.String())

	if fixedpoint.MeetsSupport(p.Yea, p.Nay, e.cfg.SupportPct()) {
		e.setState(p, store.Resolved)
	}
	e.persist(p)
	return nil
}

// voteable reports whether a proposal in state accepts votes: spec.md §4.D
// requires state ∈ {Queued, Unpended, Pended, Boosted}, i.e. anything
// non-terminal.
func voteable(state store.ProposalState) bool {
	return !state.Terminal()
}
