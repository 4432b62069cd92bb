package codec

import "errors"

var (
	// ErrStrategyNotFound is returned when a strategy is not found in the registry
	ErrStrategyNotFound = errors.New("compression strategy not found")

	// ErrInvalidParameter is returned when encoding/decoding parameters are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMissingField is returned when a required metadata field is absent
	ErrMissingField = errors.New("missing metadata field")

	// ErrInsufficientData is returned when a stream is shorter than its
	// metadata demands
	ErrInsufficientData = errors.New("insufficient data")

	// ErrTrailingData is returned when a stream carries bytes beyond what its
	// metadata accounts for
	ErrTrailingData = errors.New("trailing data")
)
