package farm

import (
	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/common/bin"
)

var (
	tagManagerCount = byte(0x01)
	tagManager      = byte(0x02)
	tagCrop         = byte(0x03)
	tagPlot         = byte(0x04)
)

var (
	seedManager         = []byte("manager")
	seedRewarder        = []byte("rewarder")
	seedCrop            = []byte("crop")
	seedDepositTreasury = []byte("deposit_treasury")
	seedRewardTreasury  = []byte("reward_treasury")
)

func makeFarmKey(key byte, body ...[]byte) []byte {
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

func makeManagerKey(manager common.Address) []byte {
	return makeFarmKey(tagManager, manager[:])
}

func makeCropKey(manager common.Address, id uint64) []byte {
	return makeFarmKey(tagCrop, manager[:], bin.Uint64Bytes(id))
}

func makeCropPrefix(manager common.Address) []byte {
	return makeFarmKey(tagCrop, manager[:])
}

func makePlotKey(manager common.Address, id uint64, farmer common.Address) []byte {
	return makeFarmKey(tagPlot, manager[:], bin.Uint64Bytes(id), farmer[:])
}
