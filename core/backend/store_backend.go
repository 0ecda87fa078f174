package backend

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// StoreBackend is a transactional ordered key value store
type StoreBackend interface {
	Shrink()
	Close()
	View(fn func(txn StoreReader) error) error
	Update(fn func(txn StoreWriter) error) error
}

// StoreReader reads the store inside of a transaction
type StoreReader interface {
	Get(key []byte) ([]byte, error)
	Iterate(prefix []byte, fn func(key []byte, value []byte) error) error
}

// StoreWriter writes the store inside of a transaction.
// Writes become visible to others only when the transaction commits.
type StoreWriter interface {
	StoreReader
	Set(key []byte, value []byte) error
	Delete(key []byte) error
}

type CreateBackend func(Path string) (StoreBackend, error)

var (
	driverLock sync.RWMutex
	gDriverMap = map[string]CreateBackend{}
)

// RegisterDriver registers the backend driver of the name
func RegisterDriver(Name string, fn CreateBackend) {
	driverLock.Lock()
	defer driverLock.Unlock()

	gDriverMap[Name] = fn
}

// Drivers returns names of registered drivers
func Drivers() []string {
	driverLock.RLock()
	defer driverLock.RUnlock()

	names := make([]string, 0, len(gDriverMap))
	for name := range gDriverMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create opens the store at the path using the driver of the name
func Create(Name string, Path string) (StoreBackend, error) {
	driverLock.RLock()
	fn, has := gDriverMap[Name]
	driverLock.RUnlock()
	if !has {
		return nil, errors.Wrap(ErrNotExistDriver, Name)
	}
	return fn(Path)
}

// PrefixEnd returns the smallest key greater than every key with the prefix.
// It returns nil when no such key exists.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
