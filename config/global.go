package config

import (
	"math/big"
	"time"

	"hcgov/fixedpoint"
)

// SupportPct parses SupportPctWei into a *big.Int. Malformed input parses as
// zero, which Validate rejects via ErrInitSupportTooSmall.
func (g Global) SupportPct() *big.Int {
	value, ok := new(big.Int).SetString(g.SupportPctWei, 10)
	if !ok {
		return big.NewInt(0)
	}
	return value
}

// QueuePeriod returns QueuePeriodSeconds as a time.Duration.
func (g Global) QueuePeriod() time.Duration {
	return time.Duration(g.QueuePeriodSeconds) * time.Second
}

// BoostPeriod returns BoostPeriodSeconds as a time.Duration.
func (g Global) BoostPeriod() time.Duration {
	return time.Duration(g.BoostPeriodSeconds) * time.Second
}

// BoostPeriodExtension returns BoostPeriodExtensionSeconds as a
// time.Duration.
func (g Global) BoostPeriodExtension() time.Duration {
	return time.Duration(g.BoostPeriodExtensionSeconds) * time.Second
}

// PendedBoostPeriod returns PendedBoostPeriodSeconds as a time.Duration.
func (g Global) PendedBoostPeriod() time.Duration {
	return time.Duration(g.PendedBoostPeriodSeconds) * time.Second
}

// ConfidenceThreshold computes the scaled confidence threshold that drives
// the Unpended/Pended boundary.
func (g Global) ConfidenceThreshold() *big.Int {
	return fixedpoint.Threshold(new(big.Int).SetUint64(g.ConfidenceThresholdBase))
}
