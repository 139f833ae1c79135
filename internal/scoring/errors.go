package scoring

import "errors"

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrInvalidWeights  = errors.New("invalid weights")
)
