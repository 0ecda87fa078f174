package types

import (
	"github.com/meverselabs/farms/common"
)

// Event is a record of a committed state change
type Event struct {
	Contract  common.Address `json:"contract"`
	Name      string         `json:"name"`
	Timestamp uint64         `json:"timestamp"`
	Manager   common.Address `json:"manager"`
	CropID    uint64         `json:"crop_id"`
	Account   common.Address `json:"account"`
	To        common.Address `json:"to"`
	Asset     common.Address `json:"asset"`
	Amount    uint64         `json:"amount"`
	Fee       uint64         `json:"fee"`
	Reward    uint64         `json:"reward"`
}

// EventHandler receives events after their operation committed
type EventHandler interface {
	OnEvents(evs []*Event) error
}
