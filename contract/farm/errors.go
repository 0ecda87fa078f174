package farm

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common/fixed"
)

// farm errors
var (
	ErrAmountIsZero      = errors.New("amount is zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAmountIsTooLarge  = errors.New("amount is too large")
	ErrInvalidFee        = errors.New("invalid fee")
	ErrNumericalOverflow = fixed.ErrNumericalOverflow
	ErrOnlyOwner         = errors.New("only the owner can do this")
	ErrPaused            = errors.New("crop is paused")
	ErrManagerNotFound   = errors.New("manager not found")
	ErrCropNotFound      = errors.New("crop not found")
	ErrPlotNotFound      = errors.New("plot not found")
	ErrPlotExists        = errors.New("plot already exists")
	ErrUnknownAsset      = errors.New("unknown asset")
	ErrInvalidOwner      = errors.New("invalid owner")
)
