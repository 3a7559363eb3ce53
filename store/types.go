// Package store holds the proposal record, its per-account sub-ledgers, and
// the dense append-only container the engine mutates. It carries no
// behavior beyond storage and the bookkeeping invariants named in the
// spec's data model — the engine in package hcengine owns all the
// lifecycle and arithmetic logic.
package store

import (
	"math/big"
	"time"

	"hcgov/crypto"
)

// ProposalState is the bit-exact lifecycle state encoding consumers depend
// on: Queued:0, Unpended:1, Pended:2, Boosted:3, Resolved:4, Expired:5.
type ProposalState uint8

const (
	Queued ProposalState = iota
	Unpended
	Pended
	Boosted
	Resolved
	Expired
)

// String renders the state for logs and JSON-RPC responses.
func (s ProposalState) String() string {
	switch s {
	case Queued:
		return "queued"
	case Unpended:
		return "unpended"
	case Pended:
		return "pended"
	case Boosted:
		return "boosted"
	case Resolved:
		return "resolved"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further operation can change the state.
func (s ProposalState) Terminal() bool {
	return s == Resolved || s == Expired
}

// VoteChoice is the bit-exact ballot encoding: Absent:0, Yea:1, Nay:2.
type VoteChoice uint8

const (
	Absent VoteChoice = iota
	Yea
	Nay
)

func (c VoteChoice) String() string {
	switch c {
	case Yea:
		return "yea"
	case Nay:
		return "nay"
	default:
		return "absent"
	}
}

// VoteRecord stores a voter's current choice together with the weight
// sampled at the time the choice was cast, so a recast subtracts the
// previously recorded weight rather than a freshly sampled balance (Open
// Question "vote-weight revision", option (a)).
type VoteRecord struct {
	Choice VoteChoice
	Weight *big.Int
}

// Proposal is one governance item undergoing vote and stake accumulation.
// Fields mirror spec.md §3 exactly; Metadata is opaque to the engine.
type Proposal struct {
	ID             uint64
	Metadata       string
	CreatedBy      crypto.Address
	State          ProposalState
	StartDate      time.Time
	Lifetime       time.Duration
	LastPendedDate time.Time

	Yea *big.Int
	Nay *big.Int

	Upstake   *big.Int
	Downstake *big.Int

	Votes      map[string]VoteRecord
	Upstakes   map[string]*big.Int
	Downstakes map[string]*big.Int
}

// Deadline returns StartDate + Lifetime, the instant after which the
// proposal's current track (queue or boost) expires.
func (p *Proposal) Deadline() time.Time {
	return p.StartDate.Add(p.Lifetime)
}

// BoostEligibleAt returns the instant a Pended proposal becomes eligible for
// boostProposal. Only meaningful while State == Pended.
func (p *Proposal) BoostEligibleAt(pendedBoostPeriod time.Duration) time.Time {
	return p.LastPendedDate.Add(pendedBoostPeriod)
}

// AuditEvent identifies the lifecycle milestone captured by an audit record.
type AuditEvent string

const (
	AuditEventProposalCreated    AuditEvent = "proposal_created"
	AuditEventVoteCast           AuditEvent = "vote_cast"
	AuditEventUpstaked           AuditEvent = "upstaked"
	AuditEventDownstaked         AuditEvent = "downstaked"
	AuditEventUpstakeWithdrawn   AuditEvent = "upstake_withdrawn"
	AuditEventDownstakeWithdrawn AuditEvent = "downstake_withdrawn"
	AuditEventStateChanged       AuditEvent = "state_changed"
)

// AuditRecord is an immutable, append-only governance lifecycle entry,
// referenced by a monotonically increasing sequence so the exact ordering
// of operations can be reconstructed without an external event stream.
type AuditRecord struct {
	Sequence   uint64
	Timestamp  time.Time
	Event      AuditEvent
	ProposalID uint64
	Actor      string
	Details    string
}
