package bin

import (
	"encoding/binary"

	"github.com/meverselabs/farms/common"
)

// Uint64Bytes returns a byte array of the uint64 number
func Uint64Bytes(v uint64) []byte {
	BNum := make([]byte, 8)
	binary.LittleEndian.PutUint64(BNum, v)
	return BNum
}

// PutUint64 puts the uint64 number into the byte array
func PutUint64(bs []byte, v uint64) {
	binary.LittleEndian.PutUint64(bs, v)
}

// Uint64 returns a uint64 number of the byte array
func Uint64(v []byte) uint64 {
	return binary.LittleEndian.Uint64(v)
}

// Address returns an address of the byte array
func Address(v []byte) common.Address {
	return common.BytesToAddress(v)
}
