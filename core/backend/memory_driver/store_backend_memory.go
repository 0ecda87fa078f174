package memory_driver

import (
	"bytes"
	"sync"

	"github.com/tidwall/btree"

	"github.com/meverselabs/farms/core/backend"
)

const btreeDegrees = 64

func init() {
	backend.RegisterDriver("memory", func(path string) (backend.StoreBackend, error) {
		return NewStoreBackendMemory(), nil
	})
}

type dbItem struct {
	key   []byte
	value []byte
}

// Less orders items by the key
func (dbi *dbItem) Less(item btree.Item, ctx interface{}) bool {
	return bytes.Compare(dbi.key, item.(*dbItem).key) < 0
}

// StoreBackendMemory keeps every key in an ordered b-tree.
// Updates are applied in place and undone when the transaction fails.
type StoreBackendMemory struct {
	sync.RWMutex
	keys   *btree.BTree
	closed bool
}

func NewStoreBackendMemory() *StoreBackendMemory {
	return &StoreBackendMemory{
		keys: btree.New(btreeDegrees, nil),
	}
}

func (st *StoreBackendMemory) Shrink() {
}

func (st *StoreBackendMemory) Close() {
	st.Lock()
	defer st.Unlock()

	st.closed = true
	st.keys = btree.New(btreeDegrees, nil)
}

func (st *StoreBackendMemory) View(fn func(txn backend.StoreReader) error) error {
	st.RLock()
	defer st.RUnlock()

	if st.closed {
		return backend.ErrClosed
	}
	return fn(&storeBackendMemoryTx{keys: st.keys})
}

func (st *StoreBackendMemory) Update(fn func(txn backend.StoreWriter) error) error {
	st.Lock()
	defer st.Unlock()

	if st.closed {
		return backend.ErrClosed
	}
	txn := &storeBackendMemoryTx{keys: st.keys}
	defer func() {
		if e := recover(); e != nil {
			txn.rollback()
			panic(e)
		}
	}()
	if err := fn(txn); err != nil {
		txn.rollback()
		return err
	}
	return nil
}

type undoEntry struct {
	key  []byte
	prev *dbItem
}

type storeBackendMemoryTx struct {
	keys *btree.BTree
	undo []undoEntry
}

func (r *storeBackendMemoryTx) Get(key []byte) ([]byte, error) {
	item := r.keys.Get(&dbItem{key: key})
	if item == nil {
		return nil, backend.ErrNotExistKey
	}
	return append([]byte{}, item.(*dbItem).value...), nil
}

// Iterate collects the matched items first so fn may write to the store
func (r *storeBackendMemoryTx) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	items := []*dbItem{}
	r.keys.AscendGreaterOrEqual(&dbItem{key: prefix}, func(item btree.Item) bool {
		dbi := item.(*dbItem)
		if !bytes.HasPrefix(dbi.key, prefix) {
			return false
		}
		items = append(items, dbi)
		return true
	})
	for _, dbi := range items {
		if err := fn(append([]byte{}, dbi.key...), append([]byte{}, dbi.value...)); err != nil {
			return err
		}
	}
	return nil
}

func (r *storeBackendMemoryTx) Set(key []byte, value []byte) error {
	item := &dbItem{
		key:   append([]byte{}, key...),
		value: append([]byte{}, value...),
	}
	prev := r.keys.ReplaceOrInsert(item)
	r.record(item.key, prev)
	return nil
}

func (r *storeBackendMemoryTx) Delete(key []byte) error {
	prev := r.keys.Delete(&dbItem{key: key})
	if prev != nil {
		r.record(append([]byte{}, key...), prev)
	}
	return nil
}

func (r *storeBackendMemoryTx) record(key []byte, prev btree.Item) {
	entry := undoEntry{key: key}
	if prev != nil {
		entry.prev = prev.(*dbItem)
	}
	r.undo = append(r.undo, entry)
}

func (r *storeBackendMemoryTx) rollback() {
	for i := len(r.undo) - 1; i >= 0; i-- {
		u := r.undo[i]
		if u.prev == nil {
			r.keys.Delete(&dbItem{key: u.key})
		} else {
			r.keys.ReplaceOrInsert(u.prev)
		}
	}
	r.undo = nil
}
