package token

import "github.com/pkg/errors"

// token errors
var (
	ErrExistAsset          = errors.New("token: exist asset")
	ErrNotExistAsset       = errors.New("token: not exist asset")
	ErrNotIssuer           = errors.New("token: not asset issuer")
	ErrInvalidSymbol       = errors.New("token: invalid symbol")
	ErrInvalidAmount       = errors.New("token: invalid amount")
	ErrZeroAddress         = errors.New("token: zero address")
	ErrExceedBalance       = errors.New("token: transfer exceed balance")
	ErrNotAuthorized       = errors.New("token: not authorized")
	ErrExistAccount        = errors.New("token: exist account")
	ErrSupplyOverflow      = errors.New("token: supply overflow")
	ErrInvalidAccountSeeds = errors.New("token: invalid account seeds")
)
