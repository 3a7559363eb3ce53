// Package metrics exposes the Prometheus collectors the engine and its
// HTTP surface increment at each operation boundary.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder is the capability the engine consumes to report activity. The
// default Collectors implementation registers real Prometheus collectors;
// tests use NoopRecorder to avoid double-registration across cases.
type Recorder interface {
	ProposalCreated()
	VoteCast()
	StakeDeposited(amountWei float64)
	StakeWithdrawn(amountWei float64)
	StateTransition(from, to string)
	CompensationFeePaid(amountWei float64)
	Poke(kind string, ok bool)
}

// Collectors is the production Recorder, registering its collectors against
// the supplied registerer (typically prometheus.DefaultRegisterer).
type Collectors struct {
	proposalsCreated    prometheus.Counter
	votesCast           prometheus.Counter
	stakeDeposited      prometheus.Counter
	stakeWithdrawn      prometheus.Counter
	proposalStateGauge  *prometheus.GaugeVec
	compensationFeePaid prometheus.Counter
	pokeTotal           *prometheus.CounterVec
}

// NewCollectors constructs and registers the engine's Prometheus collectors.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		proposalsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hc_proposals_created_total",
			Help: "Total governance proposals created.",
		}),
		votesCast: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hc_votes_cast_total",
			Help: "Total votes cast, including recasts.",
		}),
		stakeDeposited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hc_stake_deposited_wei_total",
			Help: "Total stake-token wei deposited across all proposals.",
		}),
		stakeWithdrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hc_stake_withdrawn_wei_total",
			Help: "Total stake-token wei withdrawn across all proposals.",
		}),
		proposalStateGauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hc_proposal_state_total",
			Help: "Current proposal count per lifecycle state.",
		}, []string{"state"}),
		compensationFeePaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hc_compensation_fee_paid_wei_total",
			Help: "Total compensation fee wei paid out to pokers.",
		}),
		pokeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hc_poke_total",
			Help: "Total lifecycle pokes by kind and result.",
		}, []string{"kind", "result"}),
	}
	reg.MustRegister(
		c.proposalsCreated,
		c.votesCast,
		c.stakeDeposited,
		c.stakeWithdrawn,
		c.proposalStateGauge,
		c.compensationFeePaid,
		c.pokeTotal,
	)
	return c
}

func (c *Collectors) ProposalCreated() { c.proposalsCreated.Inc() }
func (c *Collectors) VoteCast()        { c.votesCast.Inc() }

func (c *Collectors) StakeDeposited(amountWei float64) { c.stakeDeposited.Add(amountWei) }
func (c *Collectors) StakeWithdrawn(amountWei float64) { c.stakeWithdrawn.Add(amountWei) }

func (c *Collectors) StateTransition(from, to string) {
	if from != "" {
		c.proposalStateGauge.WithLabelValues(from).Dec()
	}
	c.proposalStateGauge.WithLabelValues(to).Inc()
}

func (c *Collectors) CompensationFeePaid(amountWei float64) {
	c.compensationFeePaid.Add(amountWei)
}

func (c *Collectors) Poke(kind string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	c.pokeTotal.WithLabelValues(kind, result).Inc()
}

// NoopRecorder discards all measurements. It is the Engine's default so
// tests and CLI-only usage never need a live Prometheus registry.
type NoopRecorder struct{}

func (NoopRecorder) ProposalCreated()               {}
func (NoopRecorder) VoteCast()                      {}
func (NoopRecorder) StakeDeposited(float64)          {}
func (NoopRecorder) StakeWithdrawn(float64)          {}
func (NoopRecorder) StateTransition(from, to string) {}
func (NoopRecorder) CompensationFeePaid(float64)     {}
func (NoopRecorder) Poke(kind string, ok bool)       {}
