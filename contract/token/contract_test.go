package token

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/core/backend"
	"github.com/meverselabs/farms/core/backend/memory_driver"
	"github.com/meverselabs/farms/core/types"
)

var (
	issuer = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	alice  = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	bob    = common.HexToAddress("0x00000000000000000000000000000000000000a3")
	vault  = common.NamedAddress("vault")
)

type ledgerTest struct {
	st   backend.StoreBackend
	cont *TokenContract
}

func newLedgerTest() *ledgerTest {
	return &ledgerTest{
		st:   memory_driver.NewStoreBackendMemory(),
		cont: NewTokenContract(common.NamedAddress("token")),
	}
}

// exec runs fn in one transaction with the caller as the signer
func (lt *ledgerTest) exec(caller common.Address, fn func(cc *types.ContractContext) error) error {
	return lt.st.Update(func(txn backend.StoreWriter) error {
		cc := types.NewContractContext(txn, lt.cont.Address(), caller, 1)
		return fn(cc)
	})
}

func (lt *ledgerTest) balance(t *testing.T, asset common.Address, holder common.Address) uint64 {
	var bal uint64
	require.NoError(t, lt.exec(common.ZeroAddr, func(cc *types.ContractContext) error {
		var err error
		bal, err = lt.cont.BalanceOf(cc, asset, holder)
		return err
	}))
	return bal
}

func (lt *ledgerTest) createAsset(t *testing.T, symbol string) common.Address {
	var asset common.Address
	require.NoError(t, lt.exec(issuer, func(cc *types.ContractContext) error {
		var err error
		asset, err = lt.cont.CreateAsset(cc, symbol, 9)
		return err
	}))
	return asset
}

func TestMintAndTransfer(t *testing.T) {
	lt := newLedgerTest()
	asset := lt.createAsset(t, "SEED")

	err := lt.exec(alice, func(cc *types.ContractContext) error {
		return lt.cont.Mint(cc, asset, alice, 100)
	})
	assert.Equal(t, ErrNotIssuer, errors.Cause(err))

	require.NoError(t, lt.exec(issuer, func(cc *types.ContractContext) error {
		return lt.cont.Mint(cc, asset, alice, 100)
	}))

	require.NoError(t, lt.exec(alice, func(cc *types.ContractContext) error {
		return lt.cont.Transfer(cc, asset, alice, bob, alice, 40)
	}))
	assert.Equal(t, uint64(60), lt.balance(t, asset, alice))
	assert.Equal(t, uint64(40), lt.balance(t, asset, bob))

	// bob can not move alice's funds
	err = lt.exec(bob, func(cc *types.ContractContext) error {
		return lt.cont.Transfer(cc, asset, alice, bob, bob, 10)
	})
	assert.Equal(t, ErrNotAuthorized, errors.Cause(err))

	err = lt.exec(alice, func(cc *types.ContractContext) error {
		return lt.cont.Transfer(cc, asset, alice, bob, alice, 61)
	})
	assert.Equal(t, ErrExceedBalance, errors.Cause(err))

	var supply uint64
	require.NoError(t, lt.exec(common.ZeroAddr, func(cc *types.ContractContext) error {
		var err error
		supply, err = lt.cont.TotalSupply(cc, asset)
		return err
	}))
	assert.Equal(t, uint64(100), supply)
}

func TestCreateAssetTwice(t *testing.T) {
	lt := newLedgerTest()
	lt.createAsset(t, "SEED")

	err := lt.exec(issuer, func(cc *types.ContractContext) error {
		_, err := lt.cont.CreateAsset(cc, "SEED", 9)
		return err
	})
	assert.Equal(t, ErrExistAsset, errors.Cause(err))
}

func TestDerivedAccount(t *testing.T) {
	lt := newLedgerTest()
	asset := lt.createAsset(t, "SEED")
	seeds := [][]byte{[]byte("treasury")}
	signer := common.DeriveAddress(vault, []byte("signer"))

	var holder common.Address
	require.NoError(t, lt.st.Update(func(txn backend.StoreWriter) error {
		cc := types.NewContractContext(txn, vault, alice, 1).Call(lt.cont.Address())
		var err error
		holder, err = lt.cont.OpenAccount(cc, signer, seeds...)
		if err != nil {
			return err
		}
		// opening again with the same authority is a no-op
		again, err := lt.cont.OpenAccount(cc, signer, seeds...)
		if err != nil {
			return err
		}
		assert.Equal(t, holder, again)

		_, err = lt.cont.OpenAccount(cc, alice, seeds...)
		assert.Equal(t, ErrExistAccount, errors.Cause(err))
		return nil
	}))
	assert.Equal(t, common.DeriveAddress(vault, seeds...), holder)

	require.NoError(t, lt.exec(issuer, func(cc *types.ContractContext) error {
		return lt.cont.Mint(cc, asset, holder, 50)
	}))

	// the holder itself is not its authority anymore
	err := lt.exec(holder, func(cc *types.ContractContext) error {
		return lt.cont.Transfer(cc, asset, holder, alice, holder, 10)
	})
	assert.Equal(t, ErrNotAuthorized, errors.Cause(err))

	// a different contract can not derive the signer
	err = lt.st.Update(func(txn backend.StoreWriter) error {
		cc := types.NewContractContext(txn, common.NamedAddress("other"), alice, 1).Call(lt.cont.Address())
		return lt.cont.TransferSigned(cc, asset, holder, alice, 10, []byte("signer"))
	})
	assert.Equal(t, ErrNotAuthorized, errors.Cause(err))

	require.NoError(t, lt.st.Update(func(txn backend.StoreWriter) error {
		cc := types.NewContractContext(txn, vault, alice, 1).Call(lt.cont.Address())
		return lt.cont.TransferSigned(cc, asset, holder, alice, 10, []byte("signer"))
	}))
	assert.Equal(t, uint64(40), lt.balance(t, asset, holder))
	assert.Equal(t, uint64(10), lt.balance(t, asset, alice))
}

func TestTransferRollsBackWithTheOperation(t *testing.T) {
	lt := newLedgerTest()
	asset := lt.createAsset(t, "SEED")
	require.NoError(t, lt.exec(issuer, func(cc *types.ContractContext) error {
		return lt.cont.Mint(cc, asset, alice, 10)
	}))

	abort := errors.New("abort")
	err := lt.exec(alice, func(cc *types.ContractContext) error {
		if err := lt.cont.Transfer(cc, asset, alice, bob, alice, 10); err != nil {
			return err
		}
		return abort
	})
	assert.Equal(t, abort, err)
	assert.Equal(t, uint64(10), lt.balance(t, asset, alice))
	assert.Zero(t, lt.balance(t, asset, bob))
}
