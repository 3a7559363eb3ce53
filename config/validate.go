package config

import (
	"fmt"
	"math/big"

	"hcgov/fixedpoint"
	"hcgov/hcerrors"
)

// minSupportPct is 50% expressed in PCTBase wei: support_pct below this is
// rejected as ErrInitSupportTooSmall.
var minSupportPct = new(big.Int).Mul(big.NewInt(50), fixedpoint.PrecisionMultiplier)

// Validate enforces the init-time bounds named in the spec: support_pct must
// be an absolute majority threshold strictly below 100%, and the duration
// and fee parameters must be positive enough to be meaningful.
func Validate(g Global) error {
	supportPct := g.SupportPct()
	if supportPct.Cmp(minSupportPct) < 0 {
		return hcerrors.ErrInitSupportTooSmall
	}
	if supportPct.Cmp(fixedpoint.PCTBase) >= 0 {
		return hcerrors.ErrInitSupportTooBig
	}
	if g.QueuePeriodSeconds == 0 {
		return fmt.Errorf("%w: queue_period must be positive", hcerrors.ErrInvalidConfig)
	}
	if g.BoostPeriodSeconds == 0 {
		return fmt.Errorf("%w: boost_period must be positive", hcerrors.ErrInvalidConfig)
	}
	if g.CompensationFeePct == 0 {
		return fmt.Errorf("%w: compensation_fee_pct must be positive", hcerrors.ErrInvalidConfig)
	}
	if g.ConfidenceThresholdBase == 0 {
		return fmt.Errorf("%w: confidence_threshold_base must be positive", hcerrors.ErrInvalidConfig)
	}

	// boost_proposal resets a proposal's lifetime to boost_period without
	// moving start_date, so a proposal first eligible for boosting at
	// pended_boost_period (the earliest possible boost call) already has a
	// deadline of start_date+boost_period. If boost_period <=
	// pended_boost_period that deadline is already in the past the instant
	// the proposal is boosted. Such configurations are rejected unless
	// boost_period_extension is non-zero. The engine does not add
	// boost_period_extension to any deadline; this check is its only use.
	if g.BoostPeriod() <= g.PendedBoostPeriod() && g.BoostPeriodExtension() <= 0 {
		return fmt.Errorf("%w: boost_period_extension must be positive when boost_period <= pended_boost_period", hcerrors.ErrInvalidConfig)
	}
	return nil
}
