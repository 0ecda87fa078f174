package farm

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common/fixed"
)

const (
	// RateScale is the denominator of the fee rates, 1e9 is 100%
	RateScale = 1_000_000_000
	// RewardScale is the fixed point scale of RewardsPerShare
	RewardScale = 1_000_000_000
)

// CalculateFee returns floor(amount * rate / RateScale)
func CalculateFee(rate uint64, amount uint64) (uint64, error) {
	return fixed.MulDiv(amount, rate, RateScale)
}

// AssertValidFee fails when the rate is over 100%
func AssertValidFee(rate uint64) error {
	if rate > RateScale {
		return errors.Wrapf(ErrInvalidFee, "%v > %v", rate, RateScale)
	}
	return nil
}

// UpdateCrop advances the reward accumulator of the crop to now.
// Emission stops at the end timestamp and nothing accrues while the crop is empty.
// The crop is left untouched when an error is returned.
func UpdateCrop(crop *Crop, now uint64) error {
	if now <= crop.PreviousRewardTimestamp {
		return nil
	}
	effective := now
	if effective > crop.EndTimestamp {
		effective = crop.EndTimestamp
	}
	// the window was shortened below the last accrual
	if effective <= crop.PreviousRewardTimestamp {
		return nil
	}
	elapsed := effective - crop.PreviousRewardTimestamp

	rps := crop.RewardsPerShare
	if crop.TotalDeposited > 0 {
		additional, err := fixed.MulMulDiv(elapsed, crop.RewardRate, RewardScale, crop.TotalDeposited)
		if err != nil {
			return err
		}
		if rps, err = fixed.Add64(rps, additional); err != nil {
			return err
		}
	}
	crop.RewardsPerShare = rps
	crop.PreviousRewardTimestamp = effective
	return nil
}

// RewardDebt returns the rewards already accounted for the amount
func RewardDebt(rewardsPerShare uint64, amount uint64) (uint64, error) {
	return fixed.MulDiv(amount, rewardsPerShare, RewardScale)
}

// PlotRewards returns the claimable rewards of the plot against its current debt
func PlotRewards(crop *Crop, plot *Plot) (uint64, error) {
	accrued, err := RewardDebt(crop.RewardsPerShare, plot.Amount)
	if err != nil {
		return 0, err
	}
	return fixed.Sub64(accrued, plot.Debt)
}
