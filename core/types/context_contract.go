package types

import (
	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/core/backend"
)

// ContractContext is an context for the contract.
// Every read and write goes through the store transaction of the running
// operation, so an operation either commits as a whole or not at all.
type ContractContext struct {
	cont      common.Address
	from      common.Address
	signer    common.Address
	timestamp uint64
	txn       backend.StoreWriter
	events    *[]*Event
}

// NewContractContext returns a ContractContext of the contract called by from
func NewContractContext(txn backend.StoreWriter, cont common.Address, from common.Address, timestamp uint64) *ContractContext {
	return &ContractContext{
		cont:      cont,
		from:      from,
		signer:    from,
		timestamp: timestamp,
		txn:       txn,
		events:    &[]*Event{},
	}
}

// From returns current caller address
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// Signer returns the account which started the operation, it stays the same across calls
func (cc *ContractContext) Signer() common.Address {
	return cc.signer
}

// Contract returns the address of the running contract
func (cc *ContractContext) Contract() common.Address {
	return cc.cont
}

// Timestamp returns the unix time in seconds of the operation
func (cc *ContractContext) Timestamp() uint64 {
	return cc.timestamp
}

// Call returns the context of the target contract called by the running contract.
// Both contexts share the transaction and the event list.
func (cc *ContractContext) Call(target common.Address) *ContractContext {
	return &ContractContext{
		cont:      target,
		from:      cc.cont,
		signer:    cc.signer,
		timestamp: cc.timestamp,
		txn:       cc.txn,
		events:    cc.events,
	}
}

// ContractData returns the contract data of the name, nil when it does not exist
func (cc *ContractContext) ContractData(name []byte) ([]byte, error) {
	value, err := cc.txn.Get(cc.key(name))
	if err != nil {
		if backend.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// SetContractData stores the contract data of the name, an empty value deletes it
func (cc *ContractContext) SetContractData(name []byte, value []byte) error {
	if len(value) == 0 {
		return cc.txn.Delete(cc.key(name))
	}
	return cc.txn.Set(cc.key(name), value)
}

// IterateContractData calls fn with every contract data whose name has the prefix
func (cc *ContractContext) IterateContractData(prefix []byte, fn func(name []byte, value []byte) error) error {
	return cc.txn.Iterate(cc.key(prefix), func(key []byte, value []byte) error {
		return fn(key[common.AddressLength:], value)
	})
}

// EmitEvent appends the event which is published after the operation commits
func (cc *ContractContext) EmitEvent(ev *Event) {
	if ev.Contract == common.ZeroAddr {
		ev.Contract = cc.cont
	}
	if ev.Timestamp == 0 {
		ev.Timestamp = cc.timestamp
	}
	*cc.events = append(*cc.events, ev)
}

// Events returns the events emitted by the operation
func (cc *ContractContext) Events() []*Event {
	return *cc.events
}

func (cc *ContractContext) key(name []byte) []byte {
	bs := make([]byte, common.AddressLength+len(name))
	copy(bs, cc.cont[:])
	copy(bs[common.AddressLength:], name)
	return bs
}
