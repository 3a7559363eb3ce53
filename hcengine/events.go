package hcengine

import (
	"strconv"

	"hcgov/core/events"
)

// Event type tags, named after the operations in spec.md §6.
const (
	TypeProposalCreated  = "gov.proposalCreated"
	TypeVoteCasted       = "gov.voteCasted"
	TypeUpstakeProposal  = "gov.upstakeProposal"
	TypeDownstakeProposal = "gov.downstakeProposal"
	TypeWithdrawUpstake  = "gov.withdrawUpstake"
	TypeWithdrawDownstake = "gov.withdrawDownstake"
	TypeProposalStateChanged = "gov.proposalStateChanged"
)

// ProposalCreated is emitted once per create_proposal call.
type ProposalCreated struct {
	ID       uint64
	Creator  string
	Metadata string
}

func (ProposalCreated) EventType() string { return TypeProposalCreated }

func (e ProposalCreated) Record() *events.Record {
	return &events.Record{Type: TypeProposalCreated, Attributes: map[string]string{
		"id":       strconv.FormatUint(e.ID, 10),
		"creator":  e.Creator,
		"metadata": e.Metadata,
	}}
}

// VoteCasted is emitted once per vote call, including recasts.
type VoteCasted struct {
	ID       uint64
	Voter    string
	Supports bool
	Weight   string
}

func (VoteCasted) EventType() string { return TypeVoteCasted }

func (e VoteCasted) Record() *events.Record {
	return &events.Record{Type: TypeVoteCasted, Attributes: map[string]string{
		"id":       strconv.FormatUint(e.ID, 10),
		"voter":    e.Voter,
		"supports": strconv.FormatBool(e.Supports),
		"stake":    e.Weight,
	}}
}

// UpstakeProposal is emitted when stake(..., supports=true) deposits funds.
type UpstakeProposal struct {
	ID     uint64
	Staker string
	Amount string
}

func (UpstakeProposal) EventType() string { return TypeUpstakeProposal }

func (e UpstakeProposal) Record() *events.Record {
	return &events.Record{Type: TypeUpstakeProposal, Attributes: map[string]string{
		"id":     strconv.FormatUint(e.ID, 10),
		"staker": e.Staker,
		"amount": e.Amount,
	}}
}

// DownstakeProposal is emitted when stake(..., supports=false) deposits funds.
type DownstakeProposal struct {
	ID     uint64
	Staker string
	Amount string
}

func (DownstakeProposal) EventType() string { return TypeDownstakeProposal }

func (e DownstakeProposal) Record() *events.Record {
	return &events.Record{Type: TypeDownstakeProposal, Attributes: map[string]string{
		"id":     strconv.FormatUint(e.ID, 10),
		"staker": e.Staker,
		"amount": e.Amount,
	}}
}

// WithdrawUpstake is emitted when unstake(..., supports=true) withdraws funds.
type WithdrawUpstake struct {
	ID     uint64
	Staker string
	Amount string
}

func (WithdrawUpstake) EventType() string { return TypeWithdrawUpstake }

func (e WithdrawUpstake) Record() *events.Record {
	return &events.Record{Type: TypeWithdrawUpstake, Attributes: map[string]string{
		"id":     strconv.FormatUint(e.ID, 10),
		"staker": e.Staker,
		"amount": e.Amount,
	}}
}

// WithdrawDownstake is emitted when unstake(..., supports=false) withdraws funds.
type WithdrawDownstake struct {
	ID     uint64
	Staker string
	Amount string
}

func (WithdrawDownstake) EventType() string { return TypeWithdrawDownstake }

func (e WithdrawDownstake) Record() *events.Record {
	return &events.Record{Type: TypeWithdrawDownstake, Attributes: map[string]string{
		"id":     strconv.FormatUint(e.ID, 10),
		"staker": e.Staker,
		"amount": e.Amount,
	}}
}

// ProposalStateChanged is emitted every time a proposal's lifecycle state
// transitions, including Queued<->Unpended<->Pended cycling.
type ProposalStateChanged struct {
	ID       uint64
	NewState string
}

func (ProposalStateChanged) EventType() string { return TypeProposalStateChanged }

func (e ProposalStateChanged) Record() *events.Record {
	return &events.Record{Type: TypeProposalStateChanged, Attributes: map[string]string{
		"id":        strconv.FormatUint(e.ID, 10),
		"new_state": e.NewState,
	}}
}
