package badger_driver

import (
	"os"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/meverselabs/farms/core/backend"
)

func init() {
	backend.RegisterDriver("badger", NewStoreBackendBadger)
}

type StoreBackendBadger struct {
	db *badger.DB
}

func NewStoreBackendBadger(path string) (backend.StoreBackend, error) {
	opts := badger.DefaultOptions(path)
	opts.Truncate = true
	opts.SyncWrites = true
	opts.Logger = nil
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return nil, errors.WithStack(err)
	}

	start := time.Now()
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	logrus.WithField("path", path).Infoln("Badger is opened in", time.Since(start))
	back := &StoreBackendBadger{
		db: db,
	}
	return back, nil
}

// Shrink runs the value log garbage collection until nothing is rewritten
func (st *StoreBackendBadger) Shrink() {
	for i := 0; i < 10; i++ {
		if err := st.db.RunValueLogGC(0.5); err != nil {
			break
		}
	}
}

func (st *StoreBackendBadger) Close() {
	start := time.Now()
	st.Shrink()
	st.db.Close()
	logrus.Infoln("Badger is closed in", time.Since(start))
}

func (st *StoreBackendBadger) View(fn func(txn backend.StoreReader) error) error {
	return st.db.View(func(txn *badger.Txn) error {
		return fn(&storeBackendBadgerTx{txn: txn})
	})
}

// Update runs fn in an optimistic transaction. A commit that loses against a
// concurrent writer of the same keys returns backend.ErrConflict.
func (st *StoreBackendBadger) Update(fn func(txn backend.StoreWriter) error) error {
	err := st.db.Update(func(txn *badger.Txn) error {
		return fn(&storeBackendBadgerTx{txn: txn})
	})
	if err == badger.ErrConflict {
		return errors.WithStack(backend.ErrConflict)
	}
	return err
}

type storeBackendBadgerTx struct {
	txn *badger.Txn
}

func (r *storeBackendBadgerTx) Get(key []byte) ([]byte, error) {
	item, err := r.txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, backend.ErrNotExistKey
		}
		return nil, errors.WithStack(err)
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return value, nil
}

func (r *storeBackendBadgerTx) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := r.txn.NewIterator(opts)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := fn(item.KeyCopy(nil), value); err != nil {
			return err
		}
	}
	return nil
}

func (r *storeBackendBadgerTx) Set(key []byte, value []byte) error {
	return errors.WithStack(r.txn.Set(key, value))
}

func (r *storeBackendBadgerTx) Delete(key []byte) error {
	return errors.WithStack(r.txn.Delete(key))
}
