package farmapi

import (
	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/contract/farm"
	"github.com/meverselabs/farms/service/apiserver"
)

func (fa *farmAPI) registerFarm(api *apiserver.APIServer) error {
	s, err := api.JRPC("farm")
	if err != nil {
		return err
	}

	s.Set("appoint", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		return fa.fr.Appoint(from)
	})
	s.Set("entrust", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		manager, err := arg.Address(1)
		if err != nil {
			return nil, err
		}
		To, err := arg.Address(2)
		if err != nil {
			return nil, err
		}
		return nil, fa.fr.Entrust(from, manager, To)
	})
	s.Set("cultivate", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		manager, err := arg.Address(1)
		if err != nil {
			return nil, err
		}
		depositAsset, err := arg.Address(2)
		if err != nil {
			return nil, err
		}
		rewardAsset, err := arg.Address(3)
		if err != nil {
			return nil, err
		}
		params, err := cropParams(arg, 4)
		if err != nil {
			return nil, err
		}
		return fa.fr.Cultivate(from, manager, &farm.CropConfig{
			DepositAsset: depositAsset,
			RewardAsset:  rewardAsset,
			CropParams:   params,
		})
	})
	s.Set("recultivate", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		manager, id, err := cropArgs(arg, 1)
		if err != nil {
			return nil, err
		}
		params, err := cropParams(arg, 3)
		if err != nil {
			return nil, err
		}
		return nil, fa.fr.Recultivate(from, manager, id, &params)
	})
	s.Set("setPaused", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		manager, id, err := cropArgs(arg, 1)
		if err != nil {
			return nil, err
		}
		Paused, err := arg.Bool(3)
		if err != nil {
			return nil, err
		}
		return nil, fa.fr.SetPaused(from, manager, id, Paused)
	})
	s.Set("till", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		manager, id, err := cropArgs(arg, 1)
		if err != nil {
			return nil, err
		}
		return nil, fa.fr.Till(from, manager, id)
	})

	amountMethods := map[string]func(from common.Address, manager common.Address, id uint64, Amount uint64) error{
		"sow":     fa.fr.Sow,
		"deposit": fa.fr.Deposit,
		"uproot":  fa.fr.Uproot,
	}
	for name, fn := range amountMethods {
		fn := fn
		s.Set(name, func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
			from, err := arg.Address(0)
			if err != nil {
				return nil, err
			}
			manager, id, err := cropArgs(arg, 1)
			if err != nil {
				return nil, err
			}
			Amount, err := arg.Uint64(3)
			if err != nil {
				return nil, err
			}
			return nil, fn(from, manager, id, Amount)
		})
	}

	s.Set("collect", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		from, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		manager, id, err := cropArgs(arg, 1)
		if err != nil {
			return nil, err
		}
		To := common.ZeroAddr
		if arg.Len() > 3 {
			if To, err = arg.Address(3); err != nil {
				return nil, err
			}
		}
		return fa.fr.Collect(from, manager, id, To)
	})

	s.Set("manager", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		manager, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		return fa.fr.Manager(manager)
	})
	s.Set("crop", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		manager, id, err := cropArgs(arg, 0)
		if err != nil {
			return nil, err
		}
		return fa.fr.Crop(manager, id)
	})
	s.Set("crops", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		manager, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		return fa.fr.Crops(manager)
	})
	s.Set("plot", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		manager, id, err := cropArgs(arg, 0)
		if err != nil {
			return nil, err
		}
		farmer, err := arg.Address(2)
		if err != nil {
			return nil, err
		}
		return fa.fr.Plot(manager, id, farmer)
	})
	s.Set("pendingRewards", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		manager, id, err := cropArgs(arg, 0)
		if err != nil {
			return nil, err
		}
		farmer, err := arg.Address(2)
		if err != nil {
			return nil, err
		}
		return fa.fr.PendingRewards(manager, id, farmer)
	})
	s.Set("addresses", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		manager, id, err := cropArgs(arg, 0)
		if err != nil {
			return nil, err
		}
		return fa.fr.Addresses(manager, id)
	})
	return nil
}
