// Package farmer hosts the farm and the token ledger over a store backend.
// Operations on one crop are serialized while different crops run
// concurrently, and every operation commits in a single transaction.
package farmer

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/contract/farm"
	"github.com/meverselabs/farms/contract/token"
	"github.com/meverselabs/farms/core/backend"
	"github.com/meverselabs/farms/core/types"
)

const defaultMaxRetry = 8

var (
	// TokenAddress is the address of the token ledger
	TokenAddress = common.NamedAddress("token")
	// FarmAddress is the address of the farm
	FarmAddress = common.NamedAddress("farm")
)

// Farmer runs the operations of the farm
type Farmer struct {
	sync.Mutex
	st       backend.StoreBackend
	clock    Clock
	token    *token.TokenContract
	farm     *farm.FarmContract
	locks    *lockTable
	handlers []types.EventHandler
	maxRetry int
	log      *logrus.Entry
}

// NewFarmer returns a Farmer over the store, the clock is made monotonic
func NewFarmer(st backend.StoreBackend, clock Clock) *Farmer {
	if clock == nil {
		clock = SystemClock{}
	}
	tk := token.NewTokenContract(TokenAddress)
	return &Farmer{
		st:       st,
		clock:    NewMonotonicClock(clock),
		token:    tk,
		farm:     farm.NewFarmContract(FarmAddress, tk),
		locks:    newLockTable(),
		maxRetry: defaultMaxRetry,
		log:      logrus.WithField("module", "farmer"),
	}
}

// SetMaxRetry sets how many times a conflicted transaction is retried
func (fr *Farmer) SetMaxRetry(n int) {
	fr.Lock()
	defer fr.Unlock()

	fr.maxRetry = n
}

// AddEventHandler adds a handler which receives the events of committed operations
func (fr *Farmer) AddEventHandler(eh types.EventHandler) {
	fr.Lock()
	defer fr.Unlock()

	fr.handlers = append(fr.handlers, eh)
}

func (fr *Farmer) Farm() *farm.FarmContract {
	return fr.farm
}

func (fr *Farmer) Token() *token.TokenContract {
	return fr.token
}

func cropLockKey(manager common.Address, id uint64) string {
	return fmt.Sprintf("crop:%v:%d", manager.String(), id)
}

func managerLockKey(manager common.Address) string {
	return "manager:" + manager.String()
}

// execute runs fn as the operation op of from on the contract cont while
// holding the locks of the keys
func (fr *Farmer) execute(op string, from common.Address, cont common.Address, keys []string, fn func(cc *types.ContractContext) error) error {
	unlock := fr.locks.Lock(keys...)
	defer unlock()

	fr.Lock()
	maxRetry := fr.maxRetry
	fr.Unlock()

	now := fr.clock.Now()
	entry := fr.log.WithFields(logrus.Fields{
		"op":        op,
		"from":      from.String(),
		"timestamp": now,
	})

	var evs []*types.Event
	var err error
	for i := 0; i <= maxRetry; i++ {
		err = fr.st.Update(func(txn backend.StoreWriter) error {
			cc := types.NewContractContext(txn, cont, from, now)
			if err := fn(cc); err != nil {
				return err
			}
			evs = cc.Events()
			return nil
		})
		if errors.Cause(err) != backend.ErrConflict {
			break
		}
		entry.WithField("retry", i+1).Debug("transaction conflicted")
	}
	if err != nil {
		entry.WithError(err).Warn("operation failed")
		return err
	}
	entry.WithField("events", len(evs)).Debug("operation committed")

	fr.dispatch(evs)
	return nil
}

// view runs fn on a read only context of the contract
func (fr *Farmer) view(cont common.Address, fn func(cc *types.ContractContext) error) error {
	now := fr.clock.Now()
	return fr.st.View(func(txn backend.StoreReader) error {
		return fn(types.NewContractContext(backend.ReadOnly(txn), cont, common.ZeroAddr, now))
	})
}

func (fr *Farmer) dispatch(evs []*types.Event) {
	if len(evs) == 0 {
		return
	}
	fr.Lock()
	handlers := make([]types.EventHandler, len(fr.handlers))
	copy(handlers, fr.handlers)
	fr.Unlock()

	for _, eh := range handlers {
		if err := eh.OnEvents(evs); err != nil {
			fr.log.WithError(err).Warn("event handler failed")
		}
	}
}
