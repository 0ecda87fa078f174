package token

import (
	"github.com/meverselabs/farms/common"
)

var (
	tagAsset     = byte(0x01)
	tagSupply    = byte(0x02)
	tagBalance   = byte(0x10)
	tagAuthority = byte(0x11)
)

func makeTokenKey(key byte, body ...[]byte) []byte {
	size := 1
	for _, b := range body {
		size += len(b)
	}
	bs := make([]byte, 0, size)
	bs = append(bs, key)
	for _, b := range body {
		bs = append(bs, b...)
	}
	return bs
}

func makeAssetKey(asset common.Address) []byte {
	return makeTokenKey(tagAsset, asset[:])
}

func makeSupplyKey(asset common.Address) []byte {
	return makeTokenKey(tagSupply, asset[:])
}

func makeBalanceKey(asset common.Address, holder common.Address) []byte {
	return makeTokenKey(tagBalance, asset[:], holder[:])
}

func makeAuthorityKey(holder common.Address) []byte {
	return makeTokenKey(tagAuthority, holder[:])
}
