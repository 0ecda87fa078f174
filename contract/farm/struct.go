package farm

import (
	"io"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/common/bin"
)

// Manager is a farming authority which owns a sequence of crops
type Manager struct {
	Address   common.Address `json:"address"`
	Owner     common.Address `json:"owner"`
	CropCount uint64         `json:"crop_count"`
	Rewarder  common.Address `json:"rewarder"`
}

func (s *Manager) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Address); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.CropCount); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.Rewarder); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *Manager) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Address); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.CropCount); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.Rewarder); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// CropParams are the economics of a crop which the owner can change
type CropParams struct {
	DepositFee   uint64 `json:"deposit_fee"`
	WithdrawFee  uint64 `json:"withdraw_fee"`
	RewardRate   uint64 `json:"reward_rate"`
	EndTimestamp uint64 `json:"end_timestamp"`
}

// CropConfig is used to cultivate a new crop
type CropConfig struct {
	DepositAsset common.Address `json:"deposit_asset"`
	RewardAsset  common.Address `json:"reward_asset"`
	CropParams
}

// Crop is a pool which emits the reward asset to the depositors of the deposit asset
type Crop struct {
	Manager         common.Address `json:"manager"`
	ID              uint64         `json:"id"`
	DepositAsset    common.Address `json:"deposit_asset"`
	RewardAsset     common.Address `json:"reward_asset"`
	DepositTreasury common.Address `json:"deposit_treasury"`
	RewardTreasury  common.Address `json:"reward_treasury"`
	CropParams

	TotalDeposited          uint64 `json:"total_deposited"`
	RewardsPerShare         uint64 `json:"rewards_per_share"`
	PreviousRewardTimestamp uint64 `json:"previous_reward_timestamp"`
	AccruedFees             uint64 `json:"accrued_fees"`
	Paused                  bool   `json:"paused"`
}

// Clone returns a copy of the crop
func (s *Crop) Clone() *Crop {
	c := *s
	return &c
}

func (s *Crop) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Manager); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.ID); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.DepositAsset); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.RewardAsset); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.DepositTreasury); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.RewardTreasury); err != nil {
		return sum, err
	}
	for _, v := range []uint64{
		s.DepositFee,
		s.WithdrawFee,
		s.RewardRate,
		s.EndTimestamp,
		s.TotalDeposited,
		s.RewardsPerShare,
		s.PreviousRewardTimestamp,
		s.AccruedFees,
	} {
		if sum, err := sw.Uint64(w, v); err != nil {
			return sum, err
		}
	}
	if sum, err := sw.Bool(w, s.Paused); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *Crop) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Manager); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.ID); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.DepositAsset); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.RewardAsset); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.DepositTreasury); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.RewardTreasury); err != nil {
		return sum, err
	}
	for _, p := range []*uint64{
		&s.DepositFee,
		&s.WithdrawFee,
		&s.RewardRate,
		&s.EndTimestamp,
		&s.TotalDeposited,
		&s.RewardsPerShare,
		&s.PreviousRewardTimestamp,
		&s.AccruedFees,
	} {
		if sum, err := sr.Uint64(r, p); err != nil {
			return sum, err
		}
	}
	if sum, err := sr.Bool(r, &s.Paused); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// Plot is the position of a farmer in a crop
type Plot struct {
	Amount uint64 `json:"amount"`
	Debt   uint64 `json:"debt"`
}

func (s *Plot) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint64(w, s.Amount); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.Debt); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *Plot) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint64(r, &s.Amount); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.Debt); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
