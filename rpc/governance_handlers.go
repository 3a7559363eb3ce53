package rpc

import (
	"encoding/json"
	"math/big"

	"hcgov/crypto"
	"hcgov/store"
)

func parseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, invalidParams("amount must be a base-10 integer string")
	}
	return amount, nil
}

func parseAddress(s string) (crypto.Address, error) {
	addr, err := crypto.DecodeAddress(s)
	if err != nil {
		return crypto.Address{}, invalidParams("invalid address: " + err.Error())
	}
	return addr, nil
}

func decodeParams(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 {
		return invalidParams("params is required")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalidParams("malformed params: " + err.Error())
	}
	return nil
}

// proposalView is the JSON-facing projection of store.Proposal: addresses
// render as bech32 strings and big integers as decimal strings, matching
// the wei-as-string convention named in spec.md §6.
type proposalView struct {
	ID             uint64 `json:"id"`
	Metadata       string `json:"metadata"`
	CreatedBy      string `json:"createdBy"`
	State          string `json:"state"`
	StartDate      int64  `json:"startDate"`
	LastPendedDate int64  `json:"lastPendedDate"`
	Yea            string `json:"yea"`
	Nay            string `json:"nay"`
	Upstake        string `json:"upstake"`
	Downstake      string `json:"downstake"`
}

func viewOf(p *store.Proposal) proposalView {
	var lastPended int64
	if !p.LastPendedDate.IsZero() {
		lastPended = p.LastPendedDate.Unix()
	}
	return proposalView{
		ID:             p.ID,
		Metadata:       p.Metadata,
		CreatedBy:      p.CreatedBy.String(),
		State:          p.State.String(),
		StartDate:      p.StartDate.Unix(),
		LastPendedDate: lastPended,
		Yea:            p.Yea.String(),
		Nay:            p.Nay.String(),
		Upstake:        p.Upstake.String(),
		Downstake:      p.Downstake.String(),
	}
}

type createProposalParams struct {
	Creator  string `json:"creator"`
	Metadata string `json:"metadata"`
}

func (s *Server) handleCreateProposal(raw json.RawMessage) (interface{}, error) {
	var params createProposalParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	creator, err := parseAddress(params.Creator)
	if err != nil {
		return nil, err
	}
	id, err := s.engine.CreateProposal(creator, params.Metadata)
	if err != nil {
		return nil, err
	}
	return map[string]uint64{"id": id}, nil
}

type voteParams struct {
	Voter    string `json:"voter"`
	ID       uint64 `json:"id"`
	Supports bool   `json:"supports"`
}

func (s *Server) handleVote(raw json.RawMessage) (interface{}, error) {
	var params voteParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	voter, err := parseAddress(params.Voter)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Vote(voter, params.ID, params.Supports); err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}

type stakeParams struct {
	Staker   string `json:"staker"`
	ID       uint64 `json:"id"`
	Amount   string `json:"amount"`
	Supports bool   `json:"supports"`
}

func (s *Server) handleStake(raw json.RawMessage) (interface{}, error) {
	var params stakeParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	staker, err := parseAddress(params.Staker)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Stake(staker, params.ID, amount, params.Supports); err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}

func (s *Server) handleUnstake(raw json.RawMessage) (interface{}, error) {
	var params stakeParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	staker, err := parseAddress(params.Staker)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Unstake(staker, params.ID, amount, params.Supports); err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}

type pokeParams struct {
	Caller string `json:"caller"`
	ID     uint64 `json:"id"`
}

func (s *Server) handleBoostProposal(raw json.RawMessage) (interface{}, error) {
	var params pokeParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		return nil, err
	}
	if err := s.engine.BoostProposal(caller, params.ID); err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}

func (s *Server) handleExpireNonBoosted(raw json.RawMessage) (interface{}, error) {
	var params pokeParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		return nil, err
	}
	if err := s.engine.ExpireNonBoosted(caller, params.ID); err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}

func (s *Server) handleResolveBoosted(raw json.RawMessage) (interface{}, error) {
	var params pokeParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	caller, err := parseAddress(params.Caller)
	if err != nil {
		return nil, err
	}
	if err := s.engine.ResolveBoosted(caller, params.ID); err != nil {
		return nil, err
	}
	return map[string]bool{"ok": true}, nil
}

type idParams struct {
	ID uint64 `json:"id"`
}

func (s *Server) handleGetProposal(raw json.RawMessage) (interface{}, error) {
	var params idParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	p, err := s.engine.GetProposal(params.ID)
	if err != nil {
		return nil, err
	}
	return viewOf(p), nil
}

type voterQueryParams struct {
	ID     uint64 `json:"id"`
	Voter  string `json:"voter"`
	Staker string `json:"staker"`
}

func (s *Server) handleGetVote(raw json.RawMessage) (interface{}, error) {
	var params voterQueryParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	voter, err := parseAddress(params.Voter)
	if err != nil {
		return nil, err
	}
	choice, err := s.engine.GetVote(params.ID, voter)
	if err != nil {
		return nil, err
	}
	return map[string]string{"choice": choice.String()}, nil
}

func (s *Server) handleGetUpstake(raw json.RawMessage) (interface{}, error) {
	var params voterQueryParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	staker, err := parseAddress(params.Staker)
	if err != nil {
		return nil, err
	}
	amount, err := s.engine.GetUpstake(params.ID, staker)
	if err != nil {
		return nil, err
	}
	return map[string]string{"upstake": amount.String()}, nil
}

func (s *Server) handleGetDownstake(raw json.RawMessage) (interface{}, error) {
	var params voterQueryParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	staker, err := parseAddress(params.Staker)
	if err != nil {
		return nil, err
	}
	amount, err := s.engine.GetDownstake(params.ID, staker)
	if err != nil {
		return nil, err
	}
	return map[string]string{"downstake": amount.String()}, nil
}

func (s *Server) handleGetConfidence(raw json.RawMessage) (interface{}, error) {
	var params idParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	confidence, err := s.engine.GetConfidence(params.ID)
	if err != nil {
		return nil, err
	}
	return map[string]string{"confidence": confidence.String()}, nil
}

func (s *Server) handleNumProposals(raw json.RawMessage) (interface{}, error) {
	return map[string]uint64{"count": s.engine.NumProposals()}, nil
}
