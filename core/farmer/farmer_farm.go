package farmer

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/contract/farm"
	"github.com/meverselabs/farms/core/types"
)

//////////////////////////////////////////////////
// Farm Writer Functions
//////////////////////////////////////////////////

// Appoint creates a manager owned by from
func (fr *Farmer) Appoint(from common.Address) (common.Address, error) {
	var manager common.Address
	err := fr.execute("Appoint", from, FarmAddress, []string{"managers"}, func(cc *types.ContractContext) error {
		var err error
		manager, err = fr.farm.Appoint(cc)
		return err
	})
	return manager, err
}

func (fr *Farmer) Entrust(from common.Address, manager common.Address, To common.Address) error {
	return fr.execute("Entrust", from, FarmAddress, []string{managerLockKey(manager)}, func(cc *types.ContractContext) error {
		return fr.farm.Entrust(cc, manager, To)
	})
}

func (fr *Farmer) Cultivate(from common.Address, manager common.Address, cfg *farm.CropConfig) (uint64, error) {
	var id uint64
	err := fr.execute("Cultivate", from, FarmAddress, []string{managerLockKey(manager)}, func(cc *types.ContractContext) error {
		var err error
		id, err = fr.farm.Cultivate(cc, manager, cfg)
		return err
	})
	return id, err
}

func (fr *Farmer) Recultivate(from common.Address, manager common.Address, id uint64, params *farm.CropParams) error {
	return fr.execute("Recultivate", from, FarmAddress, []string{managerLockKey(manager), cropLockKey(manager, id)}, func(cc *types.ContractContext) error {
		return fr.farm.Recultivate(cc, manager, id, params)
	})
}

func (fr *Farmer) SetPaused(from common.Address, manager common.Address, id uint64, Paused bool) error {
	return fr.execute("SetPaused", from, FarmAddress, []string{managerLockKey(manager), cropLockKey(manager, id)}, func(cc *types.ContractContext) error {
		return fr.farm.SetPaused(cc, manager, id, Paused)
	})
}

func (fr *Farmer) Till(from common.Address, manager common.Address, id uint64) error {
	return fr.execute("Till", from, FarmAddress, []string{cropLockKey(manager, id)}, func(cc *types.ContractContext) error {
		return fr.farm.Till(cc, manager, id)
	})
}

func (fr *Farmer) Sow(from common.Address, manager common.Address, id uint64, Amount uint64) error {
	return fr.execute("Sow", from, FarmAddress, []string{cropLockKey(manager, id)}, func(cc *types.ContractContext) error {
		return fr.farm.Sow(cc, manager, id, Amount)
	})
}

// Deposit tills the plot of from when it does not exist and sows the amount
func (fr *Farmer) Deposit(from common.Address, manager common.Address, id uint64, Amount uint64) error {
	return fr.execute("Deposit", from, FarmAddress, []string{cropLockKey(manager, id)}, func(cc *types.ContractContext) error {
		if _, err := fr.farm.Plot(cc, manager, id, from); err != nil {
			if errors.Cause(err) != farm.ErrPlotNotFound {
				return err
			}
			if err := fr.farm.Till(cc, manager, id); err != nil {
				return err
			}
		}
		return fr.farm.Sow(cc, manager, id, Amount)
	})
}

func (fr *Farmer) Uproot(from common.Address, manager common.Address, id uint64, Amount uint64) error {
	return fr.execute("Uproot", from, FarmAddress, []string{cropLockKey(manager, id)}, func(cc *types.ContractContext) error {
		return fr.farm.Uproot(cc, manager, id, Amount)
	})
}

// Collect sends the fees of the crop to the address, to from when it is zero
func (fr *Farmer) Collect(from common.Address, manager common.Address, id uint64, To common.Address) (uint64, error) {
	var fees uint64
	err := fr.execute("Collect", from, FarmAddress, []string{managerLockKey(manager), cropLockKey(manager, id)}, func(cc *types.ContractContext) error {
		var err error
		fees, err = fr.farm.Collect(cc, manager, id, To)
		return err
	})
	return fees, err
}

//////////////////////////////////////////////////
// Farm Reader Functions
//////////////////////////////////////////////////
func (fr *Farmer) Manager(manager common.Address) (*farm.Manager, error) {
	var m *farm.Manager
	err := fr.view(FarmAddress, func(cc *types.ContractContext) error {
		var err error
		m, err = fr.farm.Manager(cc, manager)
		return err
	})
	return m, err
}

func (fr *Farmer) Crop(manager common.Address, id uint64) (*farm.Crop, error) {
	var crop *farm.Crop
	err := fr.view(FarmAddress, func(cc *types.ContractContext) error {
		var err error
		crop, err = fr.farm.Crop(cc, manager, id)
		return err
	})
	return crop, err
}

func (fr *Farmer) Crops(manager common.Address) ([]*farm.Crop, error) {
	var crops []*farm.Crop
	err := fr.view(FarmAddress, func(cc *types.ContractContext) error {
		var err error
		crops, err = fr.farm.Crops(cc, manager)
		return err
	})
	return crops, err
}

func (fr *Farmer) Plot(manager common.Address, id uint64, farmer common.Address) (*farm.Plot, error) {
	var plot *farm.Plot
	err := fr.view(FarmAddress, func(cc *types.ContractContext) error {
		var err error
		plot, err = fr.farm.Plot(cc, manager, id, farmer)
		return err
	})
	return plot, err
}

// PendingRewards returns the rewards the farmer could claim now
func (fr *Farmer) PendingRewards(manager common.Address, id uint64, farmer common.Address) (uint64, error) {
	var rewards uint64
	err := fr.view(FarmAddress, func(cc *types.ContractContext) error {
		var err error
		rewards, err = fr.farm.PendingRewards(cc, manager, id, farmer)
		return err
	})
	return rewards, err
}

// Addresses returns the derived accounts of the crop
func (fr *Farmer) Addresses(manager common.Address, id uint64) (*farm.CropAddresses, error) {
	crop, err := fr.Crop(manager, id)
	if err != nil {
		return nil, err
	}
	return fr.farm.Addresses(manager, id, crop.RewardAsset), nil
}
