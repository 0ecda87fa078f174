package farmer

import (
	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/contract/token"
	"github.com/meverselabs/farms/core/types"
)

// CreateAsset registers an asset issued by from
func (fr *Farmer) CreateAsset(from common.Address, symbol string, decimals uint8) (common.Address, error) {
	var asset common.Address
	err := fr.execute("CreateAsset", from, TokenAddress, nil, func(cc *types.ContractContext) error {
		var err error
		asset, err = fr.token.CreateAsset(cc, symbol, decimals)
		return err
	})
	return asset, err
}

// Mint issues the amount of the asset to the address
func (fr *Farmer) Mint(from common.Address, asset common.Address, To common.Address, Amount uint64) error {
	return fr.execute("Mint", from, TokenAddress, nil, func(cc *types.ContractContext) error {
		return fr.token.Mint(cc, asset, To, Amount)
	})
}

// Transfer moves the amount of the asset owned by from
func (fr *Farmer) Transfer(from common.Address, asset common.Address, To common.Address, Amount uint64) error {
	return fr.execute("Transfer", from, TokenAddress, nil, func(cc *types.ContractContext) error {
		return fr.token.Transfer(cc, asset, from, To, from, Amount)
	})
}

func (fr *Farmer) Asset(asset common.Address) (*token.AssetInfo, error) {
	var info *token.AssetInfo
	err := fr.view(TokenAddress, func(cc *types.ContractContext) error {
		var err error
		info, err = fr.token.Asset(cc, asset)
		return err
	})
	return info, err
}

func (fr *Farmer) BalanceOf(asset common.Address, holder common.Address) (uint64, error) {
	var bal uint64
	err := fr.view(TokenAddress, func(cc *types.ContractContext) error {
		var err error
		bal, err = fr.token.BalanceOf(cc, asset, holder)
		return err
	})
	return bal, err
}

func (fr *Farmer) TotalSupply(asset common.Address) (uint64, error) {
	var supply uint64
	err := fr.view(TokenAddress, func(cc *types.ContractContext) error {
		var err error
		supply, err = fr.token.TotalSupply(cc, asset)
		return err
	})
	return supply, err
}
