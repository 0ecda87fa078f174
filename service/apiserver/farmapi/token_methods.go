package farmapi

import (
	"github.com/meverselabs/farms/service/apiserver"
)

func (fa *farmAPI) registerToken(api *apiserver.APIServer) error {
	s, err := api.JRPC("token")
	if err != nil {
		return err
	}

	s.Set("createAsset", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		symbol, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		decimals, err := arg.Uint8(2)
		if err != nil {
			return nil, err
		}
		return fa.fr.CreateAsset(from, symbol, decimals)
	})
	s.Set("mint", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		asset, err := arg.Address(1)
		if err != nil {
			return nil, err
		}
		To, err := arg.Address(2)
		if err != nil {
			return nil, err
		}
		Amount, err := arg.Uint64(3)
		if err != nil {
			return nil, err
		}
		return nil, fa.fr.Mint(from, asset, To, Amount)
	})
	s.Set("transfer", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		asset, err := arg.Address(1)
		if err != nil {
			return nil, err
		}
		To, err := arg.Address(2)
		if err != nil {
			return nil, err
		}
		Amount, err := arg.Uint64(3)
		if err != nil {
			return nil, err
		}
		return nil, fa.fr.Transfer(from, asset, To, Amount)
	})
	s.Set("asset", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		asset, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		return fa.fr.Asset(asset)
	})
	s.Set("balanceOf", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		asset, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		holder, err := arg.Address(1)
		if err != nil {
			return nil, err
		}
		return fa.fr.BalanceOf(asset, holder)
	})
	s.Set("totalSupply", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		asset, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		return fa.fr.TotalSupply(asset)
	})
	return nil
}
