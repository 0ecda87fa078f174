package farm

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/common/bin"
	"github.com/meverselabs/farms/core/types"
)

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

// onlyOwner returns the manager when the caller owns it
func (cont *FarmContract) onlyOwner(cc *types.ContractContext, manager common.Address) (*Manager, error) {
	m, err := cont.Manager(cc, manager)
	if err != nil {
		return nil, err
	}
	if m.Owner != cc.From() {
		return nil, errors.Wrapf(ErrOnlyOwner, "%v is not the owner of %v", cc.From().String(), manager.String())
	}
	return m, nil
}

func (cont *FarmContract) setManagerCount(cc *types.ContractContext, count uint64) error {
	return cc.SetContractData([]byte{tagManagerCount}, bin.Uint64Bytes(count))
}

func (cont *FarmContract) setManager(cc *types.ContractContext, m *Manager) error {
	return cont.setData(cc, makeManagerKey(m.Address), m)
}

func (cont *FarmContract) setCrop(cc *types.ContractContext, crop *Crop) error {
	return cont.setData(cc, makeCropKey(crop.Manager, crop.ID), crop)
}

func (cont *FarmContract) setPlot(cc *types.ContractContext, manager common.Address, id uint64, farmer common.Address, plot *Plot) error {
	return cont.setData(cc, makePlotKey(manager, id, farmer), plot)
}

func (cont *FarmContract) setData(cc *types.ContractContext, key []byte, v io.WriterTo) error {
	bf := new(bytes.Buffer)
	if _, err := v.WriteTo(bf); err != nil {
		return err
	}
	return cc.SetContractData(key, bf.Bytes())
}

// tokenContext returns the context of the ledger called by the farm
func (cont *FarmContract) tokenContext(cc *types.ContractContext) *types.ContractContext {
	return cc.Call(cont.token.Address())
}

// payRewards sends the rewards from the reward treasury, signed by the rewarder of the manager
func (cont *FarmContract) payRewards(cc *types.ContractContext, crop *Crop, To common.Address, Amount uint64) error {
	if Amount == 0 {
		return nil
	}
	return cont.token.TransferSigned(cont.tokenContext(cc), crop.RewardAsset, crop.RewardTreasury, To, Amount, seedRewarder, crop.Manager[:])
}

// withdrawDeposit sends the deposit asset from the deposit treasury, signed by the crop authority
func (cont *FarmContract) withdrawDeposit(cc *types.ContractContext, crop *Crop, To common.Address, Amount uint64) error {
	if Amount == 0 {
		return nil
	}
	return cont.token.TransferSigned(cont.tokenContext(cc), crop.DepositAsset, crop.DepositTreasury, To, Amount, seedCrop, crop.Manager[:], bin.Uint64Bytes(crop.ID))
}

// depositFrom moves the deposit asset of the farmer into the deposit treasury, the farmer signed the operation
func (cont *FarmContract) depositFrom(cc *types.ContractContext, crop *Crop, farmer common.Address, Amount uint64) error {
	if Amount == 0 {
		return nil
	}
	return cont.token.Transfer(cont.tokenContext(cc), crop.DepositAsset, farmer, crop.DepositTreasury, farmer, Amount)
}
