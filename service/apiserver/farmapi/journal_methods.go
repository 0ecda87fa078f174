package farmapi

import (
	"github.com/meverselabs/farms/service/apiserver"
	"github.com/meverselabs/farms/service/journal"
)

func (fa *farmAPI) registerJournal(api *apiserver.APIServer) error {
	s, err := api.JRPC("journal")
	if err != nil {
		return err
	}

	// list [filter, offset, limit], filter keys are name, manager, crop_id and account
	s.Set("list", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		q := &journal.Query{}
		var err error
		if arg.Len() > 0 {
			filter, err := arg.Map(0)
			if err != nil {
				return nil, err
			}
			if err := parseFilter(filter, q); err != nil {
				return nil, err
			}
		}
		if arg.Len() > 1 {
			if q.Offset, err = arg.Int(1); err != nil {
				return nil, err
			}
		}
		if arg.Len() > 2 {
			if q.Limit, err = arg.Int(2); err != nil {
				return nil, err
			}
		}
		return fa.jn.List(q)
	})
	return nil
}

func parseFilter(filter map[string]interface{}, q *journal.Query) error {
	keys := []string{"name", "manager", "crop_id", "account"}
	values := make([]interface{}, len(keys))
	for i, k := range keys {
		values[i] = filter[k]
	}
	arg := apiserver.NewArgument(values)

	var err error
	if values[0] != nil {
		if q.Name, err = arg.String(0); err != nil {
			return err
		}
	}
	if values[1] != nil {
		if q.Manager, err = arg.Address(1); err != nil {
			return err
		}
	}
	if values[2] != nil {
		id, err := arg.Uint64(2)
		if err != nil {
			return err
		}
		q.CropID = &id
	}
	if values[3] != nil {
		if q.Account, err = arg.Address(3); err != nil {
			return err
		}
	}
	return nil
}
