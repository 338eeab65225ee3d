package extraction

import "errors"

var (
	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("extraction: invalid configuration")

	// ErrNoPolicies is returned when the input yields no usable policy
	// texts.
	ErrNoPolicies = errors.New("extraction: input contains no policy texts")
)
