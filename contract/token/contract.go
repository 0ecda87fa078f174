package token

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/common/bin"
	"github.com/meverselabs/farms/common/fixed"
	"github.com/meverselabs/farms/core/types"
)

// TokenContract is the ledger of every fungible asset.
// Balances are kept per (asset, holder). A holder moves funds when the
// caller proves its authority, which is the holder itself unless the
// account was opened with another authority.
type TokenContract struct {
	addr common.Address
}

func NewTokenContract(addr common.Address) *TokenContract {
	return &TokenContract{
		addr: addr,
	}
}

func (cont *TokenContract) Name() string {
	return "TokenContract"
}

func (cont *TokenContract) Address() common.Address {
	return cont.addr
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////
func (cont *TokenContract) Asset(cc *types.ContractContext, asset common.Address) (*AssetInfo, error) {
	bs, err := cc.ContractData(makeAssetKey(asset))
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return nil, errors.Wrap(ErrNotExistAsset, asset.String())
	}
	info := &AssetInfo{}
	if _, err := info.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return info, nil
}

func (cont *TokenContract) Exists(cc *types.ContractContext, asset common.Address) (bool, error) {
	bs, err := cc.ContractData(makeAssetKey(asset))
	if err != nil {
		return false, err
	}
	return len(bs) > 0, nil
}

func (cont *TokenContract) TotalSupply(cc *types.ContractContext, asset common.Address) (uint64, error) {
	return cont.uint64Data(cc, makeSupplyKey(asset))
}

func (cont *TokenContract) BalanceOf(cc *types.ContractContext, asset common.Address, holder common.Address) (uint64, error) {
	return cont.uint64Data(cc, makeBalanceKey(asset, holder))
}

// AuthorityOf returns the identity allowed to move funds of the holder
func (cont *TokenContract) AuthorityOf(cc *types.ContractContext, holder common.Address) (common.Address, error) {
	bs, err := cc.ContractData(makeAuthorityKey(holder))
	if err != nil {
		return common.ZeroAddr, err
	}
	if len(bs) == 0 {
		return holder, nil
	}
	return bin.Address(bs), nil
}

// AssetAddress returns the address of the asset issued by the issuer with the symbol
func (cont *TokenContract) AssetAddress(issuer common.Address, symbol string) common.Address {
	return common.DeriveAddress(cont.addr, []byte("asset"), issuer[:], []byte(symbol))
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

// CreateAsset registers a new asset issued by the caller
func (cont *TokenContract) CreateAsset(cc *types.ContractContext, symbol string, decimals uint8) (common.Address, error) {
	if len(symbol) == 0 || len(symbol) > 32 {
		return common.ZeroAddr, errors.WithStack(ErrInvalidSymbol)
	}
	asset := cont.AssetAddress(cc.From(), symbol)
	if has, err := cont.Exists(cc, asset); err != nil {
		return common.ZeroAddr, err
	} else if has {
		return common.ZeroAddr, errors.Wrap(ErrExistAsset, symbol)
	}

	info := &AssetInfo{
		Address:  asset,
		Issuer:   cc.From(),
		Symbol:   symbol,
		Decimals: decimals,
	}
	bs, err := bin.WriterToBytes(info)
	if err != nil {
		return common.ZeroAddr, err
	}
	if err := cc.SetContractData(makeAssetKey(asset), bs); err != nil {
		return common.ZeroAddr, err
	}
	cc.EmitEvent(&types.Event{
		Name:    "CreateAsset",
		Account: cc.From(),
		Asset:   asset,
	})
	return asset, nil
}

// Mint creates the amount of the asset to the address, only the issuer can mint
func (cont *TokenContract) Mint(cc *types.ContractContext, asset common.Address, To common.Address, Amount uint64) error {
	info, err := cont.Asset(cc, asset)
	if err != nil {
		return err
	}
	if info.Issuer != cc.From() {
		return errors.Wrap(ErrNotIssuer, cc.From().String())
	}
	if To == common.ZeroAddr {
		return errors.WithStack(ErrZeroAddress)
	}
	if Amount == 0 {
		return errors.WithStack(ErrInvalidAmount)
	}

	supply, err := cont.TotalSupply(cc, asset)
	if err != nil {
		return err
	}
	if supply, err = fixed.Add64(supply, Amount); err != nil {
		return errors.WithStack(ErrSupplyOverflow)
	}
	if err := cont.setUint64Data(cc, makeSupplyKey(asset), supply); err != nil {
		return err
	}
	if err := cont.addBalance(cc, asset, To, Amount); err != nil {
		return err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Mint",
		Account: To,
		Asset:   asset,
		Amount:  Amount,
	})
	return nil
}

// Transfer moves the amount from the holder to the address.
// The authority must have signed the operation (or be the calling contract)
// and must be the registered authority of the holder.
func (cont *TokenContract) Transfer(cc *types.ContractContext, asset common.Address, From common.Address, To common.Address, authority common.Address, Amount uint64) error {
	if authority != cc.Signer() && authority != cc.From() {
		return errors.Wrap(ErrNotAuthorized, authority.String())
	}
	return cont.transfer(cc, asset, From, To, authority, Amount)
}

// TransferSigned moves the amount from a holder whose authority is derived
// from the calling contract with the seeds
func (cont *TokenContract) TransferSigned(cc *types.ContractContext, asset common.Address, From common.Address, To common.Address, Amount uint64, seeds ...[]byte) error {
	if len(seeds) == 0 {
		return errors.WithStack(ErrInvalidAccountSeeds)
	}
	authority := common.DeriveAddress(cc.From(), seeds...)
	return cont.transfer(cc, asset, From, To, authority, Amount)
}

// OpenAccount opens the account derived from the calling contract with the
// seeds and binds its authority. Opening it again with the same authority
// returns the same account.
func (cont *TokenContract) OpenAccount(cc *types.ContractContext, authority common.Address, seeds ...[]byte) (common.Address, error) {
	if len(seeds) == 0 {
		return common.ZeroAddr, errors.WithStack(ErrInvalidAccountSeeds)
	}
	if authority == common.ZeroAddr {
		return common.ZeroAddr, errors.WithStack(ErrZeroAddress)
	}
	holder := common.DeriveAddress(cc.From(), seeds...)
	bs, err := cc.ContractData(makeAuthorityKey(holder))
	if err != nil {
		return common.ZeroAddr, err
	}
	if len(bs) > 0 {
		if bin.Address(bs) != authority {
			return common.ZeroAddr, errors.Wrap(ErrExistAccount, holder.String())
		}
		return holder, nil
	}
	if err := cc.SetContractData(makeAuthorityKey(holder), authority[:]); err != nil {
		return common.ZeroAddr, err
	}
	return holder, nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////
func (cont *TokenContract) transfer(cc *types.ContractContext, asset common.Address, From common.Address, To common.Address, authority common.Address, Amount uint64) error {
	if From == common.ZeroAddr || To == common.ZeroAddr {
		return errors.WithStack(ErrZeroAddress)
	}
	if Amount == 0 {
		return errors.WithStack(ErrInvalidAmount)
	}
	if has, err := cont.Exists(cc, asset); err != nil {
		return err
	} else if !has {
		return errors.Wrap(ErrNotExistAsset, asset.String())
	}
	if owner, err := cont.AuthorityOf(cc, From); err != nil {
		return err
	} else if owner != authority {
		return errors.Wrapf(ErrNotAuthorized, "%v for %v", authority.String(), From.String())
	}

	if err := cont.subBalance(cc, asset, From, Amount); err != nil {
		return err
	}
	if err := cont.addBalance(cc, asset, To, Amount); err != nil {
		return err
	}
	cc.EmitEvent(&types.Event{
		Name:    "Transfer",
		Account: From,
		To:      To,
		Asset:   asset,
		Amount:  Amount,
	})
	return nil
}

func (cont *TokenContract) addBalance(cc *types.ContractContext, asset common.Address, holder common.Address, Amount uint64) error {
	bal, err := cont.BalanceOf(cc, asset, holder)
	if err != nil {
		return err
	}
	if bal, err = fixed.Add64(bal, Amount); err != nil {
		return err
	}
	return cont.setUint64Data(cc, makeBalanceKey(asset, holder), bal)
}

func (cont *TokenContract) subBalance(cc *types.ContractContext, asset common.Address, holder common.Address, Amount uint64) error {
	bal, err := cont.BalanceOf(cc, asset, holder)
	if err != nil {
		return err
	}
	if bal < Amount {
		return errors.Wrapf(ErrExceedBalance, "%v has %v, needs %v", holder.String(), bal, Amount)
	}
	return cont.setUint64Data(cc, makeBalanceKey(asset, holder), bal-Amount)
}

func (cont *TokenContract) uint64Data(cc *types.ContractContext, key []byte) (uint64, error) {
	bs, err := cc.ContractData(key)
	if err != nil {
		return 0, err
	}
	if len(bs) == 0 {
		return 0, nil
	}
	return bin.Uint64(bs), nil
}

func (cont *TokenContract) setUint64Data(cc *types.ContractContext, key []byte, v uint64) error {
	if v == 0 {
		return cc.SetContractData(key, nil)
	}
	return cc.SetContractData(key, bin.Uint64Bytes(v))
}
