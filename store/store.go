package store

import (
	"errors"
	"math/big"
	"sync"

	"hcgov/crypto"
	"hcgov/hcerrors"
)

// ErrMalformedAmount is returned by persistence loaders when a stored
// decimal-string amount fails to parse back into a *big.Int.
var ErrMalformedAmount = errors.New("store: malformed amount in persisted record")

// ProposalStore is the dense, append-only, integer-keyed container named in
// spec.md §4.C. It never deletes proposals; indices are assigned
// sequentially starting at zero. All methods are safe for concurrent use,
// though in practice the engine serialises access with its own mutex and
// this one is a second line of defense for direct store callers (tests,
// the Bolt replay loader).
type ProposalStore struct {
	mu        sync.RWMutex
	proposals []*Proposal
	auditLog  []AuditRecord
	auditSeq  uint64
}

// New constructs an empty ProposalStore.
func New() *ProposalStore {
	return &ProposalStore{}
}

// Restore rebuilds a ProposalStore from proposals and audit records loaded
// from the Bolt persistence journal. proposals must be in ascending id
// order with no gaps, matching what boltstore.LoadProposals returns.
func Restore(proposals []*Proposal, audit []AuditRecord) *ProposalStore {
	s := &ProposalStore{proposals: proposals, auditLog: audit}
	for _, record := range audit {
		if record.Sequence > s.auditSeq {
			s.auditSeq = record.Sequence
		}
	}
	return s
}

// NextIndex returns the index that the next Create call will assign.
func (s *ProposalStore) NextIndex() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.proposals))
}

// Create installs a fresh proposal record and returns it. Callers supply a
// fully-populated Proposal (ID must equal NextIndex()); Create appends it
// verbatim.
func (s *ProposalStore) Create(p *Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals = append(s.proposals, p)
}

// Get returns the proposal at id, or ErrProposalDoesNotExist if id is out of
// range. The returned pointer aliases the stored record; callers must hold
// the engine's own lock while mutating it.
func (s *ProposalStore) Get(id uint64) (*Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id >= uint64(len(s.proposals)) {
		return nil, hcerrors.ErrProposalDoesNotExist
	}
	return s.proposals[id], nil
}

// Len reports the number of proposals ever created.
func (s *ProposalStore) Len() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.proposals))
}

// AppendAudit assigns the next sequence number to record and appends it to
// the in-memory audit log.
func (s *ProposalStore) AppendAudit(record AuditRecord) AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditSeq++
	record.Sequence = s.auditSeq
	s.auditLog = append(s.auditLog, record)
	return record
}

// AuditLog returns a copy of the accumulated audit records in sequence order.
func (s *ProposalStore) AuditLog() []AuditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AuditRecord, len(s.auditLog))
	copy(out, s.auditLog)
	return out
}

// voterKey renders an address to the map key used by Proposal.Votes and the
// stake sub-ledgers. Addresses are fixed-width so byte-string keys never
// collide.
func voterKey(addr crypto.Address) string {
	return string(addr.Bytes())
}

// VoteOf returns the voter's current recorded choice, or the zero value
// (Absent, nil weight) if they have never voted.
func (p *Proposal) VoteOf(voter crypto.Address) VoteRecord {
	if p.Votes == nil {
		return VoteRecord{}
	}
	return p.Votes[voterKey(voter)]
}

// SetVote records voter's choice and sampled weight.
func (p *Proposal) SetVote(voter crypto.Address, record VoteRecord) {
	if p.Votes == nil {
		p.Votes = make(map[string]VoteRecord)
	}
	p.Votes[voterKey(voter)] = record
}

// UpstakeOf returns staker's cumulative upstake commitment, or zero.
func (p *Proposal) UpstakeOf(staker crypto.Address) *big.Int {
	if amount, ok := p.Upstakes[voterKey(staker)]; ok {
		return new(big.Int).Set(amount)
	}
	return big.NewInt(0)
}

// DownstakeOf returns staker's cumulative downstake commitment, or zero.
func (p *Proposal) DownstakeOf(staker crypto.Address) *big.Int {
	if amount, ok := p.Downstakes[voterKey(staker)]; ok {
		return new(big.Int).Set(amount)
	}
	return big.NewInt(0)
}

// AddUpstake increments staker's upstake sub-ledger entry by amount,
// creating it if absent.
func (p *Proposal) AddUpstake(staker crypto.Address, amount *big.Int) {
	if p.Upstakes == nil {
		p.Upstakes = make(map[string]*big.Int)
	}
	key := voterKey(staker)
	current, ok := p.Upstakes[key]
	if !ok {
		current = big.NewInt(0)
	}
	p.Upstakes[key] = new(big.Int).Add(current, amount)
}

// AddDownstake increments staker's downstake sub-ledger entry by amount,
// creating it if absent.
func (p *Proposal) AddDownstake(staker crypto.Address, amount *big.Int) {
	if p.Downstakes == nil {
		p.Downstakes = make(map[string]*big.Int)
	}
	key := voterKey(staker)
	current, ok := p.Downstakes[key]
	if !ok {
		current = big.NewInt(0)
	}
	p.Downstakes[key] = new(big.Int).Add(current, amount)
}

// SubUpstake decrements staker's upstake sub-ledger entry by amount.
// Callers must verify sufficiency beforehand.
func (p *Proposal) SubUpstake(staker crypto.Address, amount *big.Int) {
	key := voterKey(staker)
	current := p.UpstakeOf(staker)
	p.Upstakes[key] = new(big.Int).Sub(current, amount)
}

// SubDownstake decrements staker's downstake sub-ledger entry by amount.
// Callers must verify sufficiency beforehand.
func (p *Proposal) SubDownstake(staker crypto.Address, amount *big.Int) {
	key := voterKey(staker)
	current := p.DownstakeOf(staker)
	p.Downstakes[key] = new(big.Int).Sub(current, amount)
}
