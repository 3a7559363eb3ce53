// Package hcengine implements the Holographic Consensus proposal lifecycle
// engine: the orchestrator named in spec.md §4.G, dispatching create/vote/
// stake/unstake/boost/expire/resolve to the voting, staking, and lifecycle
// logic that lives alongside it in this package, against the proposal
// records held in package store.
package hcengine

import (
	"log/slog"
	"math/big"
	"sync"
	"time"

	"hcgov/config"
	"hcgov/core/events"
	"hcgov/crypto"
	"hcgov/fixedpoint"
	"hcgov/observability/metrics"
	"hcgov/store"
)

// Engine is the single aggregate instance holding the proposal store and
// the two injected token ledgers. Every exported method runs to completion
// under e.mu, which is this reference implementation's hosting-substrate
// transaction boundary (spec.md §5): there is no suspension point at which
// another operation may interleave with an in-flight one.
type Engine struct {
	mu sync.Mutex

	voteToken  TokenLedger
	stakeToken TokenLedger

	cfg   config.Global
	store *store.ProposalStore

	emitter events.Emitter
	nowFn   func() time.Time
	metrics metrics.Recorder
	logger  *slog.Logger
	journal AuditSink
}

// AuditSink is the write-behind journal capability (SPEC_FULL.md component
// I): every committed mutation is mirrored to it so a restarted process can
// replay the journal back into an in-memory ProposalStore bit-for-bit
// equivalent to the pre-restart state. Satisfied by *store/boltstore.Store;
// the in-memory ProposalStore remains the source of truth for the lifetime
// of the process, so a sink failure is logged, never returned to the caller.
type AuditSink interface {
	SaveProposal(p *store.Proposal) error
	AppendAudit(record store.AuditRecord) error
}

// TokenLedger is the capability interface consumed from the two
// independent fungible-token ledgers named in spec.md §4.B: one samples
// voting power, the other custodies stakes. It is satisfied by
// tokenledger.Ledger; the alias keeps this package's public API free of an
// import cycle-prone dependency on the concrete reference implementation.
type TokenLedger interface {
	BalanceOf(account crypto.Address) *big.Int
	Transfer(to crypto.Address, amount *big.Int) error
	TransferFrom(owner, to crypto.Address, amount *big.Int) error
	CustodyAddress() crypto.Address
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithClock overrides the engine's notion of "now", used by tests to
// deterministically advance the clock past deadlines.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.nowFn = fn }
}

// WithEmitter wires an events.Emitter; defaults to events.NoopEmitter{}.
func WithEmitter(emitter events.Emitter) Option {
	return func(e *Engine) { e.emitter = emitter }
}

// WithMetrics wires a metrics.Recorder; defaults to metrics.NoopRecorder{}.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = recorder }
}

// WithLogger wires a structured logger; defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithStore replaces the engine's ProposalStore, used to resume against a
// store reloaded from the Bolt persistence journal.
func WithStore(s *store.ProposalStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithAuditSink wires a write-behind persistence journal (typically
// *boltstore.Store); every mutating operation mirrors its proposal
// snapshot and audit record to it after committing in memory. Defaults to
// nil, which makes persist/appendAudit's journal writes no-ops.
func WithAuditSink(sink AuditSink) Option {
	return func(e *Engine) { e.journal = sink }
}

// NewEngine validates cfg (the init operation of spec.md §6) and constructs
// an Engine wired against the two supplied token ledgers.
func NewEngine(voteToken, stakeToken TokenLedger, cfg config.Global, opts ...Option) (*Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	e := &Engine{
		voteToken:  voteToken,
		stakeToken: stakeToken,
		cfg:        cfg,
		store:      store.New(),
		emitter:    events.NoopEmitter{},
		nowFn:      time.Now,
		metrics:    metrics.NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) now() time.Time { return e.nowFn() }

func (e *Engine) emit(evt events.Event) {
	if e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) appendAudit(event store.AuditEvent, proposalID uint64, actor crypto.Address, details string) {
	actorText := ""
	if len(actor.Bytes()) != 0 {
		actorText = actor.String()
	}
	record := e.store.AppendAudit(store.AuditRecord{
		Timestamp:  e.now(),
		Event:      event,
		ProposalID: proposalID,
		Actor:      actorText,
		Details:    details,
	})
	if e.journal == nil {
		return
	}
	if err := e.journal.AppendAudit(record); err != nil {
		e.logger.Error("persist audit record failed", "sequence", record.Sequence, "error", err)
	}
}

// persist mirrors p's current snapshot to the write-behind journal, if one
// is wired. The in-memory store already holds the authoritative state by
// the time this is called; a failure here only degrades crash-recovery
// fidelity; it never unwinds the in-memory mutation.
func (e *Engine) persist(p *store.Proposal) {
	if e.journal == nil {
		return
	}
	if err := e.journal.SaveProposal(p); err != nil {
		e.logger.Error("persist proposal snapshot failed", "id", p.ID, "error", err)
	}
}

// CreateProposal installs a fresh proposal in state Queued and returns its
// assigned id. Metadata is opaque to the engine.
func (e *Engine) CreateProposal(creator crypto.Address, metadata string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.store.NextIndex()
	now := e.now()
	p := &store.Proposal{
		ID:        id,
		Metadata:  metadata,
		CreatedBy: creator,
		State:     store.Queued,
		StartDate: now,
		Lifetime:  e.cfg.QueuePeriod(),
		Yea:       big.NewInt(0),
		Nay:       big.NewInt(0),
		Upstake:   big.NewInt(0),
		Downstake: big.NewInt(0),
	}
	e.store.Create(p)
	e.metrics.ProposalCreated()
	e.metrics.StateTransition("", store.Queued.String())
	e.logger.Info("proposal created", "id", id, "creator", creator.String())
	e.emit(ProposalCreated{ID: id, Creator: creator.String(), Metadata: metadata})
	e.appendAudit(store.AuditEventProposalCreated, id, creator, metadata)
	e.persist(p)
	return id, nil
}

// GetProposal returns a snapshot copy-by-reference of the proposal record;
// callers must not mutate it.
func (e *Engine) GetProposal(id uint64) (*store.Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Get(id)
}

// GetVote returns voter's current recorded choice on proposal id.
func (e *Engine) GetVote(id uint64, voter crypto.Address) (store.VoteChoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.store.Get(id)
	if err != nil {
		return store.Absent, err
	}
	return p.VoteOf(voter).Choice, nil
}

// GetUpstake returns staker's cumulative upstake commitment on proposal id.
func (e *Engine) GetUpstake(id uint64, staker crypto.Address) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	return p.UpstakeOf(staker), nil
}

// GetDownstake returns staker's cumulative downstake commitment on proposal id.
func (e *Engine) GetDownstake(id uint64, staker crypto.Address) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	return p.DownstakeOf(staker), nil
}

// GetConfidence computes the current upstake:downstake ratio for proposal id.
func (e *Engine) GetConfidence(id uint64) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Confidence(p.Upstake, p.Downstake)
}

// NumProposals returns the number of proposals ever created.
func (e *Engine) NumProposals() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

// AuditLog returns the accumulated append-only audit trail in sequence order.
func (e *Engine) AuditLog() []store.AuditRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.AuditLog()
}

func (e *Engine) setState(p *store.Proposal, newState store.ProposalState) {
	if p.State == newState {
		return
	}
	old := p.State
	p.State = newState
	e.metrics.StateTransition(old.String(), newState.String())
	e.emit(ProposalStateChanged{ID: p.ID, NewState: newState.String()})
	e.appendAudit(store.AuditEventStateChanged, p.ID, crypto.Address{}, newState.String())
	e.persist(p)
}
