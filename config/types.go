package config

// Global bundles the engine's immutable-after-init configuration knobs, all
// of which map directly onto the parameters named in the spec's init
// operation. Duration fields are stored as whole seconds on disk (TOML) and
// converted to time.Duration by Global's accessor methods.
type Global struct {
	// SupportPctWei is support_pct scaled by fixedpoint.PCTBase (100% ==
	// 10^18 wei). Stored as a base-10 string because TOML has no native
	// big-integer type.
	SupportPctWei string `toml:"SupportPctWei"`

	// QueuePeriodSeconds is the lifetime granted to a freshly created
	// proposal. It stays in force, measured from the unchanged start date,
	// while the proposal cycles through Queued/Unpended/Pended; cycling
	// does not renew it.
	QueuePeriodSeconds uint64 `toml:"QueuePeriodSeconds"`

	// BoostPeriodSeconds is the lifetime granted to a proposal once it is
	// boosted.
	BoostPeriodSeconds uint64 `toml:"BoostPeriodSeconds"`

	// BoostPeriodExtensionSeconds must be non-zero when BoostPeriodSeconds
	// alone would let a proposal's boost window expire the instant it is
	// boosted (see Validate's boost_period vs. pended_boost_period check).
	// Validate is its only consumer: the engine does not add it to any
	// deadline.
	BoostPeriodExtensionSeconds uint64 `toml:"BoostPeriodExtensionSeconds"`

	// PendedBoostPeriodSeconds is the minimum dwell time a proposal must
	// spend continuously Pended before boostProposal will accept it.
	PendedBoostPeriodSeconds uint64 `toml:"PendedBoostPeriodSeconds"`

	// CompensationFeePct is the plain (non-scaled) divisor in the
	// compensation fee cap: a poke's fee never exceeds upstake /
	// CompensationFeePct.
	CompensationFeePct uint64 `toml:"CompensationFeePct"`

	// ConfidenceThresholdBase is the plain (non-scaled) multiplier; the
	// confidence required to move Unpended -> Pended is
	// ConfidenceThresholdBase * fixedpoint.PrecisionMultiplier.
	ConfidenceThresholdBase uint64 `toml:"ConfidenceThresholdBase"`
}
