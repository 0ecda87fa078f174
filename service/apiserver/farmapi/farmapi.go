// Package farmapi exposes the farmer and the journal as json rpc methods.
// Callers are authenticated in front of the api, the first parameter of a
// writer method is the identity of the caller.
package farmapi

import (
	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/contract/farm"
	"github.com/meverselabs/farms/core/farmer"
	"github.com/meverselabs/farms/service/apiserver"
	"github.com/meverselabs/farms/service/journal"
)

type farmAPI struct {
	fr *farmer.Farmer
	jn *journal.Journal
}

// Register adds the farm, token and journal methods to the api server.
// The journal methods are skipped when jn is nil.
func Register(api *apiserver.APIServer, fr *farmer.Farmer, jn *journal.Journal) error {
	fa := &farmAPI{
		fr: fr,
		jn: jn,
	}
	if err := fa.registerFarm(api); err != nil {
		return err
	}
	if err := fa.registerToken(api); err != nil {
		return err
	}
	if jn != nil {
		if err := fa.registerJournal(api); err != nil {
			return err
		}
	}
	return nil
}

// crop parses the manager and the crop id at the index
func cropArgs(arg *apiserver.Argument, index int) (common.Address, uint64, error) {
	manager, err := arg.Address(index)
	if err != nil {
		return common.ZeroAddr, 0, err
	}
	id, err := arg.Uint64(index + 1)
	if err != nil {
		return common.ZeroAddr, 0, err
	}
	return manager, id, nil
}

// cropParams parses deposit fee, withdraw fee, reward rate and end timestamp at the index
func cropParams(arg *apiserver.Argument, index int) (farm.CropParams, error) {
	var params farm.CropParams
	ps := []*uint64{&params.DepositFee, &params.WithdrawFee, &params.RewardRate, &params.EndTimestamp}
	for i, p := range ps {
		v, err := arg.Uint64(index + i)
		if err != nil {
			return params, err
		}
		*p = v
	}
	return params, nil
}
