package common

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// DeriveAddress returns the address derived from the base and the seeds.
// Nobody holds a key for a derived address, only the contract at base can
// act for it.
func DeriveAddress(base Address, seeds ...[]byte) Address {
	h := blake3.New()
	h.Write(base[:])
	for _, s := range seeds {
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(s)))
		h.Write(l[:])
		h.Write(s)
	}
	var sum [32]byte
	h.Digest().Read(sum[:])
	return BytesToAddress(sum[:])
}

// NamedAddress returns the well-known address of a named component
func NamedAddress(name string) Address {
	return DeriveAddress(ZeroAddr, []byte(name))
}
