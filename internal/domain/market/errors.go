package market

import "errors"

// Outpost construction failures; callers wrap them with the offending value
var (
	ErrInvalidOutpostName = errors.New("invalid outpost name")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidDemand      = errors.New("invalid demand multiplier")
)
