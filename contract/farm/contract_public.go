package farm

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/common/fixed"
	"github.com/meverselabs/farms/core/types"
)

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

// Appoint creates a new manager owned by the caller
func (cont *FarmContract) Appoint(cc *types.ContractContext) (common.Address, error) {
	seq, err := cont.ManagerCount(cc)
	if err != nil {
		return common.ZeroAddr, err
	}
	next, err := fixed.Add64(seq, 1)
	if err != nil {
		return common.ZeroAddr, err
	}
	manager := cont.ManagerAddress(cc.From(), seq)
	m := &Manager{
		Address:   manager,
		Owner:     cc.From(),
		CropCount: 0,
		Rewarder:  cont.RewarderAddress(manager),
	}
	if err := cont.setManager(cc, m); err != nil {
		return common.ZeroAddr, err
	}
	if err := cont.setManagerCount(cc, next); err != nil {
		return common.ZeroAddr, err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Appoint",
		Manager: manager,
		Account: cc.From(),
	})
	return manager, nil
}

// Till creates the empty plot of the caller in the crop
func (cont *FarmContract) Till(cc *types.ContractContext, manager common.Address, id uint64) error {
	if _, err := cont.Crop(cc, manager, id); err != nil {
		return err
	}
	if _, err := cont.Plot(cc, manager, id, cc.From()); err == nil {
		return errors.Wrap(ErrPlotExists, cc.From().String())
	} else if errors.Cause(err) != ErrPlotNotFound {
		return err
	}
	if err := cont.setPlot(cc, manager, id, cc.From(), &Plot{}); err != nil {
		return err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Till",
		Manager: manager,
		CropID:  id,
		Account: cc.From(),
	})
	return nil
}

// Sow deposits the amount of the caller into the crop.
// The pending rewards are paid first and the deposit fee is kept in the crop.
func (cont *FarmContract) Sow(cc *types.ContractContext, manager common.Address, id uint64, Amount uint64) error {
	if Amount == 0 {
		return errors.WithStack(ErrAmountIsZero)
	}
	farmer := cc.From()
	crop, err := cont.Crop(cc, manager, id)
	if err != nil {
		return err
	}
	if crop.Paused {
		return errors.Wrapf(ErrPaused, "%v/%v", manager.String(), id)
	}
	plot, err := cont.Plot(cc, manager, id, farmer)
	if err != nil {
		return err
	}
	balance, err := cont.token.BalanceOf(cont.tokenContext(cc), crop.DepositAsset, farmer)
	if err != nil {
		return err
	}
	if balance < Amount {
		return errors.Wrapf(ErrInsufficientFunds, "%v has %v, needs %v", farmer.String(), balance, Amount)
	}

	if err := UpdateCrop(crop, cc.Timestamp()); err != nil {
		return err
	}
	rewards, err := PlotRewards(crop, plot)
	if err != nil {
		return err
	}
	fee, err := CalculateFee(crop.DepositFee, Amount)
	if err != nil {
		return err
	}
	net := Amount - fee
	amount, err := fixed.Add64(plot.Amount, net)
	if err != nil {
		return err
	}
	total, err := fixed.Add64(crop.TotalDeposited, net)
	if err != nil {
		return err
	}
	fees, err := fixed.Add64(crop.AccruedFees, fee)
	if err != nil {
		return err
	}
	debt, err := RewardDebt(crop.RewardsPerShare, amount)
	if err != nil {
		return err
	}

	if err := cont.payRewards(cc, crop, farmer, rewards); err != nil {
		return err
	}
	if err := cont.depositFrom(cc, crop, farmer, Amount); err != nil {
		return err
	}
	crop.TotalDeposited = total
	crop.AccruedFees = fees
	plot.Amount = amount
	plot.Debt = debt
	if err := cont.setCrop(cc, crop); err != nil {
		return err
	}
	if err := cont.setPlot(cc, manager, id, farmer, plot); err != nil {
		return err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Sow",
		Manager: manager,
		CropID:  id,
		Account: farmer,
		Asset:   crop.DepositAsset,
		Amount:  Amount,
		Fee:     fee,
		Reward:  rewards,
	})
	return nil
}

// Uproot withdraws the amount of the caller from the crop and pays the pending rewards.
// Uprooting zero only claims the rewards.
func (cont *FarmContract) Uproot(cc *types.ContractContext, manager common.Address, id uint64, Amount uint64) error {
	farmer := cc.From()
	crop, err := cont.Crop(cc, manager, id)
	if err != nil {
		return err
	}
	plot, err := cont.Plot(cc, manager, id, farmer)
	if err != nil {
		return err
	}
	if Amount > plot.Amount {
		return errors.Wrapf(ErrAmountIsTooLarge, "%v > %v", Amount, plot.Amount)
	}

	if err := UpdateCrop(crop, cc.Timestamp()); err != nil {
		return err
	}
	rewards, err := PlotRewards(crop, plot)
	if err != nil {
		return err
	}
	var fee uint64
	fees := crop.AccruedFees
	if Amount > 0 {
		if fee, err = CalculateFee(crop.WithdrawFee, Amount); err != nil {
			return err
		}
		if fees, err = fixed.Add64(fees, fee); err != nil {
			return err
		}
	}
	amount := plot.Amount - Amount
	total, err := fixed.Sub64(crop.TotalDeposited, Amount)
	if err != nil {
		return err
	}
	debt, err := RewardDebt(crop.RewardsPerShare, amount)
	if err != nil {
		return err
	}

	if err := cont.payRewards(cc, crop, farmer, rewards); err != nil {
		return err
	}
	if err := cont.withdrawDeposit(cc, crop, farmer, Amount-fee); err != nil {
		return err
	}
	crop.TotalDeposited = total
	crop.AccruedFees = fees
	plot.Amount = amount
	plot.Debt = debt
	if err := cont.setCrop(cc, crop); err != nil {
		return err
	}
	if err := cont.setPlot(cc, manager, id, farmer, plot); err != nil {
		return err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Uproot",
		Manager: manager,
		CropID:  id,
		Account: farmer,
		Asset:   crop.DepositAsset,
		Amount:  Amount,
		Fee:     fee,
		Reward:  rewards,
	})
	return nil
}
