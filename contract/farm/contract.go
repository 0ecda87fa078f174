package farm

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/common/bin"
	"github.com/meverselabs/farms/contract/token"
	"github.com/meverselabs/farms/core/types"
)

// FarmContract keeps the managers, crops and plots and moves the assets
// of the farmers through the token ledger.
type FarmContract struct {
	addr  common.Address
	token *token.TokenContract
}

func NewFarmContract(addr common.Address, tk *token.TokenContract) *FarmContract {
	return &FarmContract{
		addr:  addr,
		token: tk,
	}
}

func (cont *FarmContract) Name() string {
	return "FarmContract"
}

func (cont *FarmContract) Address() common.Address {
	return cont.addr
}

func (cont *FarmContract) Token() *token.TokenContract {
	return cont.token
}

//////////////////////////////////////////////////
// Addresses
//////////////////////////////////////////////////

// ManagerAddress returns the address of the seq-th manager appointed by the owner
func (cont *FarmContract) ManagerAddress(owner common.Address, seq uint64) common.Address {
	return common.DeriveAddress(cont.addr, seedManager, owner[:], bin.Uint64Bytes(seq))
}

// RewarderAddress returns the authority of the reward treasuries of the manager
func (cont *FarmContract) RewarderAddress(manager common.Address) common.Address {
	return common.DeriveAddress(cont.addr, seedRewarder, manager[:])
}

// CropAuthority returns the authority of the deposit treasury of the crop
func (cont *FarmContract) CropAuthority(manager common.Address, id uint64) common.Address {
	return common.DeriveAddress(cont.addr, seedCrop, manager[:], bin.Uint64Bytes(id))
}

func (cont *FarmContract) DepositTreasuryAddress(cropAuthority common.Address) common.Address {
	return common.DeriveAddress(cont.addr, seedDepositTreasury, cropAuthority[:])
}

func (cont *FarmContract) RewardTreasuryAddress(manager common.Address, rewardAsset common.Address) common.Address {
	return common.DeriveAddress(cont.addr, seedRewardTreasury, manager[:], rewardAsset[:])
}

// CropAddresses are the derived accounts of a crop
type CropAddresses struct {
	Authority       common.Address `json:"authority"`
	Rewarder        common.Address `json:"rewarder"`
	DepositTreasury common.Address `json:"deposit_treasury"`
	RewardTreasury  common.Address `json:"reward_treasury"`
}

// Addresses returns the derived accounts of the crop
func (cont *FarmContract) Addresses(manager common.Address, id uint64, rewardAsset common.Address) *CropAddresses {
	authority := cont.CropAuthority(manager, id)
	return &CropAddresses{
		Authority:       authority,
		Rewarder:        cont.RewarderAddress(manager),
		DepositTreasury: cont.DepositTreasuryAddress(authority),
		RewardTreasury:  cont.RewardTreasuryAddress(manager, rewardAsset),
	}
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////
func (cont *FarmContract) ManagerCount(cc *types.ContractContext) (uint64, error) {
	bs, err := cc.ContractData([]byte{tagManagerCount})
	if err != nil {
		return 0, err
	}
	if len(bs) == 8 {
		return bin.Uint64(bs), nil
	}
	return 0, nil
}

func (cont *FarmContract) Manager(cc *types.ContractContext, manager common.Address) (*Manager, error) {
	bs, err := cc.ContractData(makeManagerKey(manager))
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return nil, errors.Wrap(ErrManagerNotFound, manager.String())
	}
	data := &Manager{}
	if _, err := data.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return data, nil
}

func (cont *FarmContract) Crop(cc *types.ContractContext, manager common.Address, id uint64) (*Crop, error) {
	bs, err := cc.ContractData(makeCropKey(manager, id))
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return nil, errors.Wrapf(ErrCropNotFound, "%v/%v", manager.String(), id)
	}
	data := &Crop{}
	if _, err := data.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return data, nil
}

// Crops returns every crop of the manager ordered by id
func (cont *FarmContract) Crops(cc *types.ContractContext, manager common.Address) ([]*Crop, error) {
	m, err := cont.Manager(cc, manager)
	if err != nil {
		return nil, err
	}
	crops := make([]*Crop, 0, m.CropCount)
	if err := cc.IterateContractData(makeCropPrefix(manager), func(name []byte, value []byte) error {
		crop := &Crop{}
		if _, err := crop.ReadFrom(bytes.NewReader(value)); err != nil {
			return err
		}
		crops = append(crops, crop)
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(crops, func(i, j int) bool {
		return crops[i].ID < crops[j].ID
	})
	return crops, nil
}

func (cont *FarmContract) Plot(cc *types.ContractContext, manager common.Address, id uint64, farmer common.Address) (*Plot, error) {
	bs, err := cc.ContractData(makePlotKey(manager, id, farmer))
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return nil, errors.Wrapf(ErrPlotNotFound, "%v/%v/%v", manager.String(), id, farmer.String())
	}
	data := &Plot{}
	if _, err := data.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return data, nil
}

// PendingRewards returns the rewards the farmer could claim at the time of the context
func (cont *FarmContract) PendingRewards(cc *types.ContractContext, manager common.Address, id uint64, farmer common.Address) (uint64, error) {
	crop, err := cont.Crop(cc, manager, id)
	if err != nil {
		return 0, err
	}
	plot, err := cont.Plot(cc, manager, id, farmer)
	if err != nil {
		return 0, err
	}
	if err := UpdateCrop(crop, cc.Timestamp()); err != nil {
		return 0, err
	}
	return PlotRewards(crop, plot)
}
