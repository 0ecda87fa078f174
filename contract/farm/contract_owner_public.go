package farm

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/common/fixed"
	"github.com/meverselabs/farms/core/types"
)

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

// Entrust hands the manager over to a new owner
func (cont *FarmContract) Entrust(cc *types.ContractContext, manager common.Address, To common.Address) error {
	m, err := cont.onlyOwner(cc, manager)
	if err != nil {
		return err
	}
	if To == common.ZeroAddr {
		return errors.WithStack(ErrInvalidOwner)
	}
	m.Owner = To
	if err := cont.setManager(cc, m); err != nil {
		return err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Entrust",
		Manager: manager,
		Account: cc.From(),
		To:      To,
	})
	return nil
}

// Cultivate creates a new crop of the manager and opens its treasuries
func (cont *FarmContract) Cultivate(cc *types.ContractContext, manager common.Address, cfg *CropConfig) (uint64, error) {
	m, err := cont.onlyOwner(cc, manager)
	if err != nil {
		return 0, err
	}
	if err := AssertValidFee(cfg.DepositFee); err != nil {
		return 0, err
	}
	if err := AssertValidFee(cfg.WithdrawFee); err != nil {
		return 0, err
	}
	tc := cont.tokenContext(cc)
	for _, asset := range []common.Address{cfg.DepositAsset, cfg.RewardAsset} {
		if has, err := cont.token.Exists(tc, asset); err != nil {
			return 0, err
		} else if !has {
			return 0, errors.Wrap(ErrUnknownAsset, asset.String())
		}
	}

	id := m.CropCount
	next, err := fixed.Add64(id, 1)
	if err != nil {
		return 0, err
	}
	authority := cont.CropAuthority(manager, id)
	depositTreasury, err := cont.token.OpenAccount(tc, authority, seedDepositTreasury, authority[:])
	if err != nil {
		return 0, err
	}
	rewardTreasury, err := cont.token.OpenAccount(tc, m.Rewarder, seedRewardTreasury, manager[:], cfg.RewardAsset[:])
	if err != nil {
		return 0, err
	}

	// an emission window already over never accrues
	prev := cc.Timestamp()
	if prev > cfg.EndTimestamp {
		prev = cfg.EndTimestamp
	}
	crop := &Crop{
		Manager:                 manager,
		ID:                      id,
		DepositAsset:            cfg.DepositAsset,
		RewardAsset:             cfg.RewardAsset,
		DepositTreasury:         depositTreasury,
		RewardTreasury:          rewardTreasury,
		CropParams:              cfg.CropParams,
		PreviousRewardTimestamp: prev,
	}
	m.CropCount = next
	if err := cont.setCrop(cc, crop); err != nil {
		return 0, err
	}
	if err := cont.setManager(cc, m); err != nil {
		return 0, err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Cultivate",
		Manager: manager,
		CropID:  id,
		Account: cc.From(),
		Asset:   cfg.DepositAsset,
	})
	return id, nil
}

// Recultivate replaces the economics of the crop.
// The accumulator is not advanced, the new rate applies from the last accrual.
func (cont *FarmContract) Recultivate(cc *types.ContractContext, manager common.Address, id uint64, params *CropParams) error {
	if _, err := cont.onlyOwner(cc, manager); err != nil {
		return err
	}
	if err := AssertValidFee(params.DepositFee); err != nil {
		return err
	}
	if err := AssertValidFee(params.WithdrawFee); err != nil {
		return err
	}
	crop, err := cont.Crop(cc, manager, id)
	if err != nil {
		return err
	}
	crop.CropParams = *params
	if err := cont.setCrop(cc, crop); err != nil {
		return err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Recultivate",
		Manager: manager,
		CropID:  id,
		Account: cc.From(),
	})
	return nil
}

// SetPaused stops or resumes the deposits of the crop
func (cont *FarmContract) SetPaused(cc *types.ContractContext, manager common.Address, id uint64, Paused bool) error {
	if _, err := cont.onlyOwner(cc, manager); err != nil {
		return err
	}
	crop, err := cont.Crop(cc, manager, id)
	if err != nil {
		return err
	}
	crop.Paused = Paused
	if err := cont.setCrop(cc, crop); err != nil {
		return err
	}
	name := "Resume"
	if Paused {
		name = "Pause"
	}
	cc.EmitEvent(&types.Event{
		Name:    name,
		Manager: manager,
		CropID:  id,
		Account: cc.From(),
	})
	return nil
}

// Collect sends the accrued fees of the crop to the address, the owner when it is zero
func (cont *FarmContract) Collect(cc *types.ContractContext, manager common.Address, id uint64, To common.Address) (uint64, error) {
	if _, err := cont.onlyOwner(cc, manager); err != nil {
		return 0, err
	}
	crop, err := cont.Crop(cc, manager, id)
	if err != nil {
		return 0, err
	}
	if To == common.ZeroAddr {
		To = cc.From()
	}
	fees := crop.AccruedFees
	crop.AccruedFees = 0
	if err := cont.withdrawDeposit(cc, crop, To, fees); err != nil {
		return 0, err
	}
	if err := cont.setCrop(cc, crop); err != nil {
		return 0, err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Collect",
		Manager: manager,
		CropID:  id,
		Account: cc.From(),
		To:      To,
		Asset:   crop.DepositAsset,
		Amount:  fees,
	})
	return fees, nil
}
