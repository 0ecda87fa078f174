package bin

import "github.com/pkg/errors"

// bin errors
var (
	ErrInvalidLength = errors.New("invalid length")
	ErrTooLongBytes  = errors.New("too long bytes")
)
